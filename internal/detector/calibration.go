package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slope-monitor/internal/model"
)

// DefaultHysteresisWindow is how long a sensor keeps its table after a change.
const DefaultHysteresisWindow = 2 * time.Hour

const (
	OutcomeApplied         = "applied"
	OutcomeHysteresis      = "hysteresis"
	OutcomeUnchanged       = "unchanged"
	OutcomeActuationFailed = "actuation_failed"
)

type calibrationStore interface {
	ResolveSensor(ctx context.Context, port model.Port, mac string) (*model.Sensor, error)
	LatestTiltReadings(ctx context.Context, sensorID int64, limit int) ([]model.TiltReading, error)
	SetCalibrationTable(ctx context.Context, sensorID int64, tableID int, hysteresisUntil time.Time) error
}

type actuator interface {
	SetCalibrationTable(ctx context.Context, mac string, tableID int) error
}

type actuationObserver interface {
	ObserveActuation(outcome string)
}

// Change records what the calibrator did for one target sensor.
type Change struct {
	MAC     string
	From    int
	To      int
	Outcome string
}

type Calibrator struct {
	store    calibrationStore
	actuator actuator
	policy   Policy
	group    *Group
	window   time.Duration
	observer actuationObserver
}

type CalibratorConfig struct {
	Store    calibrationStore
	Actuator actuator
	Policy   Policy
	Group    *Group
	Window   time.Duration
	Observer actuationObserver
}

func NewCalibrator(cfg CalibratorConfig) *Calibrator {
	window := cfg.Window
	if window <= 0 {
		window = DefaultHysteresisWindow
	}
	policy := cfg.Policy
	if policy == nil {
		policy = DefaultDirectMapping()
	}
	return &Calibrator{
		store:    cfg.Store,
		actuator: cfg.Actuator,
		policy:   policy,
		group:    cfg.Group,
		window:   window,
		observer: cfg.Observer,
	}
}

// Apply moves the trigger's calibration scope to the table the policy selects
// for computed, when the authority sensor's self-reported state disagrees.
// Actuation failures are logged and leave stored state untouched; only store
// failures are returned.
func (c *Calibrator) Apply(ctx context.Context, trigger *model.Sensor, computed model.Severity, now time.Time) ([]Change, error) {
	const fn = "Calibrator:Apply"
	authority, targets, err := c.scope(ctx, trigger)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}
	if authority == nil {
		return nil, nil
	}

	latest, err := c.store.LatestTiltReadings(ctx, authority.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}
	if len(latest) == 0 {
		slog.DebugContext(ctx, "No reported node state, skipping calibration", "sensor_mac", authority.MAC)
		return nil, nil
	}
	reported := latest[0].NodeState
	if reported == computed {
		return nil, nil
	}

	table, ok := c.policy.Target(authority.CalibrationTableID, computed, reported)
	if !ok {
		slog.InfoContext(ctx, "Calibration policy selected no table",
			"policy", c.policy.Kind(),
			"sensor_mac", authority.MAC,
			"table_id", authority.CalibrationTableID,
			"computed", computed.String(),
			"reported", reported.String(),
		)
		return nil, nil
	}

	changes := make([]Change, 0, len(targets))
	for _, target := range targets {
		change, err := c.applyOne(ctx, target, table, now)
		if err != nil {
			return changes, fmt.Errorf("%s:%w", fn, err)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// scope resolves the sensor whose state drives the decision and the present
// sensors that receive the change. Absent peers are skipped.
func (c *Calibrator) scope(ctx context.Context, trigger *model.Sensor) (*model.Sensor, []*model.Sensor, error) {
	switch trigger.Port {
	case model.PortTilt:
		if !c.group.IsPeer(trigger.MAC) {
			return trigger, []*model.Sensor{trigger}, nil
		}
		peers, err := c.presentPeers(ctx, trigger)
		return trigger, peers, err
	case model.PortWeather:
		peers, err := c.presentPeers(ctx, nil)
		if err != nil || len(peers) == 0 {
			return nil, nil, err
		}
		return peers[0], peers, nil
	default:
		return nil, nil, nil
	}
}

func (c *Calibrator) presentPeers(ctx context.Context, trigger *model.Sensor) ([]*model.Sensor, error) {
	var out []*model.Sensor
	for _, mac := range c.group.Peers() {
		if trigger != nil && trigger.MAC == mac {
			out = append(out, trigger)
			continue
		}
		peer, err := c.store.ResolveSensor(ctx, model.PortTilt, mac)
		if errors.Is(err, model.ErrSensorNotFound) {
			slog.DebugContext(ctx, "Peer not registered, skipping", "sensor_mac", mac)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, peer)
	}
	return out, nil
}

func (c *Calibrator) applyOne(ctx context.Context, sensor *model.Sensor, table int, now time.Time) (Change, error) {
	change := Change{MAC: sensor.MAC, From: sensor.CalibrationTableID, To: table}
	switch {
	case sensor.CalibrationTableID == table:
		change.Outcome = OutcomeUnchanged
		return change, nil
	case sensor.InHysteresis(now):
		slog.InfoContext(ctx, "Sensor within hysteresis window, table change suppressed",
			"sensor_mac", sensor.MAC,
			"hysteresis_until", sensor.HysteresisUntil,
		)
		change.Outcome = OutcomeHysteresis
		c.observe(change.Outcome)
		return change, nil
	}

	if err := c.actuator.SetCalibrationTable(ctx, sensor.MAC, table); err != nil {
		slog.ErrorContext(ctx, "Calibration table change failed",
			"error", fmt.Errorf("%w: %w", ErrActuation, err),
			"sensor_mac", sensor.MAC,
			"from", sensor.CalibrationTableID,
			"to", table,
		)
		change.Outcome = OutcomeActuationFailed
		c.observe(change.Outcome)
		return change, nil
	}

	until := now.Add(c.window)
	if err := c.store.SetCalibrationTable(ctx, sensor.ID, table, until); err != nil {
		return change, fmt.Errorf("%w:%w", ErrPersistence, err)
	}
	sensor.CalibrationTableID = table
	sensor.HysteresisUntil = until
	slog.InfoContext(ctx, "Calibration table changed",
		"sensor_mac", sensor.MAC,
		"from", change.From,
		"to", table,
		"hysteresis_until", until,
	)
	change.Outcome = OutcomeApplied
	c.observe(change.Outcome)
	return change, nil
}

func (c *Calibrator) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveActuation(outcome)
	}
}
