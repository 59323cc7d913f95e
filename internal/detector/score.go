package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"slope-monitor/internal/model"
)

type ScoreParams struct {
	B     float64 // moisture trend weight
	C     float64 // tilt magnitude weight
	D     float64 // tilt direction weight
	Delta float64 // fixed time interval, not derived from reading timestamps
}

func DefaultScoreParams() ScoreParams {
	return ScoreParams{B: 1, C: 1, D: 1, Delta: 1}
}

type Score struct {
	Y float64 `json:"y"`
	A float64 `json:"a"`
	S float64 `json:"s"`
}

type scoreStore interface {
	ResolveSensor(ctx context.Context, port model.Port, mac string) (*model.Sensor, error)
	LatestTiltReadings(ctx context.Context, sensorID int64, limit int) ([]model.TiltReading, error)
	LatestSoilReadings(ctx context.Context, sensorID int64, limit int) ([]model.SoilReading, error)
	MinMoisture(ctx context.Context, sensorID int64) (float64, error)
}

type Scorer struct {
	store  scoreStore
	group  *Group
	params ScoreParams
}

func NewScorer(store scoreStore, group *Group, params ScoreParams) *Scorer {
	return &Scorer{store: store, group: group, params: params}
}

// ComputeScore fuses the tilt kinematics of the trigger's group with the soil
// moisture trend: y = |a * s|.
func (s *Scorer) ComputeScore(ctx context.Context, trigger *model.Sensor) (Score, error) {
	const fn = "Scorer:ComputeScore"
	st, err := s.tiltTerm(ctx, trigger)
	if err != nil {
		return Score{}, fmt.Errorf("%s:%w", fn, err)
	}
	a, err := s.moistureTerm(ctx, trigger)
	if err != nil {
		return Score{}, fmt.Errorf("%s:%w", fn, err)
	}
	return Score{Y: math.Abs(a * st), A: a, S: st}, nil
}

func (s *Scorer) tiltTerm(ctx context.Context, trigger *model.Sensor) (float64, error) {
	if trigger.Port == model.PortTilt && s.group.IsIndependent(trigger.MAC) {
		alpha, err := s.sensorAlpha(ctx, trigger)
		if err != nil {
			return 0, err
		}
		return alpha / s.params.Delta, nil
	}

	var sum float64
	for _, mac := range s.group.Peers() {
		peer, err := s.store.ResolveSensor(ctx, model.PortTilt, mac)
		if errors.Is(err, model.ErrSensorNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		alpha, err := s.sensorAlpha(ctx, peer)
		if err != nil {
			return 0, err
		}
		sum += alpha
	}
	return sum / PeerGroupSize / s.params.Delta, nil
}

func (s *Scorer) sensorAlpha(ctx context.Context, sensor *model.Sensor) (float64, error) {
	readings, err := s.store.LatestTiltReadings(ctx, sensor.ID, 2)
	if err != nil {
		return 0, err
	}
	return Alpha(readings, s.params.C, s.params.D), nil
}

func (s *Scorer) moistureTerm(ctx context.Context, trigger *model.Sensor) (float64, error) {
	soil := trigger
	if trigger.Port != model.PortSoil {
		if s.group.SoilMAC() == "" {
			slog.WarnContext(ctx, "No soil sensor configured, using neutral moisture weight")
			return 1, nil
		}
		var err error
		soil, err = s.store.ResolveSensor(ctx, model.PortSoil, s.group.SoilMAC())
		if errors.Is(err, model.ErrSensorNotFound) {
			slog.WarnContext(ctx, "Soil sensor not provisioned, using neutral moisture weight", "soil_mac", s.group.SoilMAC())
			return 1, nil
		}
		if err != nil {
			return 0, err
		}
	}

	readings, err := s.store.LatestSoilReadings(ctx, soil.ID, 2)
	if err != nil {
		return 0, err
	}
	if len(readings) == 0 {
		slog.WarnContext(ctx, "No soil readings yet, using neutral moisture weight", "soil_mac", soil.MAC)
		return 1, nil
	}
	minMoisture, err := s.store.MinMoisture(ctx, soil.ID)
	if err != nil {
		return 0, err
	}
	return MoistureWeight(readings, minMoisture, s.params.B), nil
}

// Alpha is one tilt sensor's contribution, from its readings newest first.
// Fewer than two readings contribute nothing.
func Alpha(readings []model.TiltReading, c, d float64) float64 {
	if len(readings) < 2 {
		return 0
	}
	latest, previous := readings[0], readings[1]
	diffX := latest.TiltX - previous.TiltX
	diffY := latest.TiltY - previous.TiltY
	alphaX := 1 + c*math.Abs(latest.TiltX)*(1+d*sign(diffX))
	alphaY := 1 + c*math.Abs(latest.TiltY)*(1+d*sign(diffY))
	return alphaX*math.Abs(diffX) + alphaY*math.Abs(diffY)
}

// MoistureWeight is the soil term a, from readings newest first. It amplifies
// risk when moisture is rising away from its historical low.
func MoistureWeight(readings []model.SoilReading, minMoisture, b float64) float64 {
	if len(readings) == 0 {
		return 1
	}
	latest := readings[0].Moisture
	var diff float64
	if len(readings) > 1 {
		diff = latest - readings[1].Moisture
	}
	return latest * (1 + b*sign(diff)*(latest-minMoisture)) / 100
}

func sign(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}
