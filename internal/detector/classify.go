package detector

import (
	"errors"
	"fmt"
	"math"

	"slope-monitor/internal/model"
)

// DefaultWindLimit forces an alert when a weather frame reports more wind than this.
const DefaultWindLimit = 30.0

var (
	ErrInvalidThresholds = errors.New("alert threshold must be greater than caution threshold")
)

type Thresholds struct {
	Alert   float64
	Caution float64
}

type Classifier struct {
	thresholds Thresholds
	windLimit  float64
}

func NewClassifier(thresholds Thresholds, windLimit float64) (*Classifier, error) {
	if thresholds.Alert <= thresholds.Caution {
		return nil, fmt.Errorf("%w: alert=%v caution=%v", ErrInvalidThresholds, thresholds.Alert, thresholds.Caution)
	}
	return &Classifier{thresholds: thresholds, windLimit: windLimit}, nil
}

func (c *Classifier) Classify(y float64) model.Severity {
	switch {
	case y > c.thresholds.Alert:
		return model.SeverityAlert
	case y > c.thresholds.Caution:
		return model.SeverityCaution
	default:
		return model.SeverityNormal
	}
}

// TiltOverride reports whether the latest reading exceeds the sensor's absolute threshold on either axis.
func (c *Classifier) TiltOverride(sensor *model.Sensor, latest *model.TiltReading) bool {
	if latest == nil {
		return false
	}
	return math.Abs(latest.TiltX) > sensor.Threshold || math.Abs(latest.TiltY) > sensor.Threshold
}

func (c *Classifier) WindOverride(reading *model.WeatherReading) bool {
	return reading != nil && reading.WindSpeed > c.windLimit
}
