package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slope-monitor/internal/frame"
	"slope-monitor/internal/model"
)

var (
	ErrUnknownSensor = errors.New("unknown sensor")
	ErrActuation     = errors.New("calibration actuation failed")
	ErrPersistence   = errors.New("persistence failure")
)

type store interface {
	ResolveSensor(ctx context.Context, port model.Port, mac string) (*model.Sensor, error)
	RegisterTiltSensor(ctx context.Context, sensor model.Sensor, readings []model.TiltReading) (*model.Sensor, error)
	AppendTiltReadings(ctx context.Context, sensorID int64, readings []model.TiltReading) error
	AppendSoilReading(ctx context.Context, sensorID int64, reading model.SoilReading) error
	AppendWeatherReading(ctx context.Context, sensorID int64, reading model.WeatherReading) error
	LatestTiltReadings(ctx context.Context, sensorID int64, limit int) ([]model.TiltReading, error)
	LatestSoilReadings(ctx context.Context, sensorID int64, limit int) ([]model.SoilReading, error)
	MinMoisture(ctx context.Context, sensorID int64) (float64, error)
	SetCalibrationTable(ctx context.Context, sensorID int64, tableID int, hysteresisUntil time.Time) error
}

type eventLog interface {
	PreviousEvent(ctx context.Context) (*model.Event, error)
	InsertEvent(ctx context.Context, event model.Event) (*model.Event, error)
}

type Config struct {
	Store    store
	Events   eventLog
	Actuator actuator
	Group    *Group
	Observer actuationObserver

	Thresholds           Thresholds
	WindLimit            float64
	DefaultTiltThreshold float64
	HysteresisWindow     time.Duration
	Score                ScoreParams
	Policy               Policy

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of one classified frame.
type Result struct {
	Severity   model.Severity
	Changed    bool
	Score      Score
	Overridden bool
	SensorMAC  string
	Changes    []Change
}

type Detector struct {
	store      store
	events     eventLog
	scorer     *Scorer
	classifier *Classifier
	calibrator *Calibrator
	defaults   model.Sensor
	now        func() time.Time
}

func New(cfg Config) (*Detector, error) {
	if cfg.Group == nil {
		return nil, fmt.Errorf("%w: nil group", ErrInvalidGroup)
	}
	windLimit := cfg.WindLimit
	if windLimit == 0 {
		windLimit = DefaultWindLimit
	}
	classifier, err := NewClassifier(cfg.Thresholds, windLimit)
	if err != nil {
		return nil, err
	}
	params := cfg.Score
	if params.Delta == 0 {
		params.Delta = DefaultScoreParams().Delta
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Detector{
		store:      cfg.Store,
		events:     cfg.Events,
		scorer:     NewScorer(cfg.Store, cfg.Group, params),
		classifier: classifier,
		calibrator: NewCalibrator(CalibratorConfig{
			Store:    cfg.Store,
			Actuator: cfg.Actuator,
			Policy:   cfg.Policy,
			Group:    cfg.Group,
			Window:   cfg.HysteresisWindow,
			Observer: cfg.Observer,
		}),
		defaults: model.Sensor{Threshold: cfg.DefaultTiltThreshold},
		now:      now,
	}, nil
}

func (d *Detector) Scorer() *Scorer { return d.scorer }

// Detect runs one parsed frame through store, override check, scoring,
// classification, calibration and event history. A nil Result with a nil
// error means the frame was stored but not classified: a newly registered
// tilt sensor, or a weather frame under the wind limit.
func (d *Detector) Detect(ctx context.Context, f *frame.Frame) (*Result, error) {
	const fn = "Detector:Detect"
	now := d.now()

	sensor, err := d.store.ResolveSensor(ctx, f.Port, f.MAC)
	if errors.Is(err, model.ErrSensorNotFound) {
		if f.Port != model.PortTilt {
			return nil, fmt.Errorf("%s:%w: %s sensor %s", fn, ErrUnknownSensor, f.Port, f.MAC)
		}
		if err := d.register(ctx, f); err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}

	if err := d.appendReadings(ctx, sensor, f); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}

	result := &Result{SensorMAC: sensor.MAC}
	overridden, err := d.override(ctx, sensor, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}
	switch {
	case overridden:
		result.Severity = model.SeverityAlert
		result.Overridden = true
		result.Score = Score{Y: model.SentinelScore}
		slog.InfoContext(ctx, "Absolute threshold exceeded, forcing alert", "sensor_mac", sensor.MAC, "port", f.Port.String())
	case f.Port == model.PortWeather:
		return nil, nil
	default:
		score, err := d.scorer.ComputeScore(ctx, sensor)
		if err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
		}
		result.Score = score
		result.Severity = d.classifier.Classify(score.Y)
	}

	previous, err := d.events.PreviousEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}
	result.Changed = previous == nil || previous.Severity != result.Severity

	result.Changes, err = d.calibrator.Apply(ctx, sensor, result.Severity, now)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}

	_, err = d.events.InsertEvent(ctx, model.Event{
		Severity:   result.Severity,
		Score:      result.Score.Y,
		SensorID:   sensor.ID,
		Overridden: result.Overridden,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrPersistence, err)
	}

	slog.InfoContext(ctx, "Frame classified",
		"sensor_mac", sensor.MAC,
		"severity", result.Severity.String(),
		"changed", result.Changed,
		"y", result.Score.Y,
		"a", result.Score.A,
		"s", result.Score.S,
		"overridden", result.Overridden,
	)
	return result, nil
}

// register stores a new tilt sensor and its first readings atomically, so a
// retried registration frame either registers again or finds nothing stored.
func (d *Detector) register(ctx context.Context, f *frame.Frame) error {
	s := d.defaults
	s.Port = model.PortTilt
	s.MAC = f.MAC
	s.Name = "tilt-" + f.MAC
	if n := len(f.Tilt.Readings); n > 0 {
		s.CalibrationTableID = f.Tilt.Readings[n-1].TableID
	}
	sensor, err := d.store.RegisterTiltSensor(ctx, s, f.Tilt.Readings)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Registered new tilt sensor", "sensor_mac", sensor.MAC, "sensor_id", sensor.ID, "threshold", sensor.Threshold)
	return nil
}

func (d *Detector) appendReadings(ctx context.Context, sensor *model.Sensor, f *frame.Frame) error {
	switch {
	case f.Tilt != nil:
		if len(f.Tilt.Readings) == 0 {
			return nil
		}
		if err := d.store.AppendTiltReadings(ctx, sensor.ID, f.Tilt.Readings); err != nil {
			return err
		}
		sensor.CalibrationTableID = f.Tilt.Readings[len(f.Tilt.Readings)-1].TableID
		return nil
	case f.Soil != nil:
		return d.store.AppendSoilReading(ctx, sensor.ID, *f.Soil)
	case f.Weather != nil:
		return d.store.AppendWeatherReading(ctx, sensor.ID, *f.Weather)
	default:
		return nil
	}
}

func (d *Detector) override(ctx context.Context, sensor *model.Sensor, f *frame.Frame) (bool, error) {
	switch f.Port {
	case model.PortTilt:
		latest, err := d.store.LatestTiltReadings(ctx, sensor.ID, 1)
		if err != nil || len(latest) == 0 {
			return false, err
		}
		return d.classifier.TiltOverride(sensor, &latest[0]), nil
	case model.PortWeather:
		return d.classifier.WindOverride(f.Weather), nil
	default:
		return false, nil
	}
}
