package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSensorNotFound = errors.New("sensor not found")
)

// Port is the sensor class code carried in the first field of every frame.
type Port int

const (
	PortWeather Port = 0
	PortSoil    Port = 52652
	PortTilt    Port = 52660
)

func (p Port) String() string {
	switch p {
	case PortTilt:
		return "tilt"
	case PortSoil:
		return "soil"
	case PortWeather:
		return "weather"
	default:
		return fmt.Sprintf("port(%d)", int(p))
	}
}

type Severity int

const (
	SeverityNormal Severity = iota
	SeverityCaution
	SeverityAlert
)

func (s Severity) Valid() bool {
	return s >= SeverityNormal && s <= SeverityAlert
}

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityCaution:
		return "caution"
	case SeverityAlert:
		return "alert"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// SentinelScore marks events produced by an absolute override instead of the scorer.
const SentinelScore = -1.0

type Sensor struct {
	ID                 int64     `json:"id"`
	Port               Port      `json:"port"`
	MAC                string    `json:"mac"`
	Name               string    `json:"name"`
	Threshold          float64   `json:"threshold"`
	CalibrationTableID int       `json:"calibration_table_id"`
	HysteresisUntil    time.Time `json:"hysteresis_until"`
	CreatedAt          time.Time `json:"created_at"`
}

// InHysteresis reports whether calibration changes are still suppressed at now.
func (s *Sensor) InHysteresis(now time.Time) bool {
	return now.Before(s.HysteresisUntil)
}

type TiltReading struct {
	ID             int64     `json:"id"`
	SensorID       int64     `json:"sensor_id"`
	ReceivedAt     time.Time `json:"received_at"`
	NodeID         string    `json:"node_id"`
	NodeState      Severity  `json:"node_state"`
	BatteryVoltage float64   `json:"battery_voltage"`
	ObservedAt     int64     `json:"observed_at"`
	TiltX          float64   `json:"tilt_x"`
	TiltY          float64   `json:"tilt_y"`
	Temperature    float64   `json:"temperature"`
	TableID        int       `json:"table_id"`
}

type SoilReading struct {
	ID           int64     `json:"id"`
	SensorID     int64     `json:"sensor_id"`
	ReceivedAt   time.Time `json:"received_at"`
	CommandID    int       `json:"command_id"`
	SensorTypeID int       `json:"sensor_type_id"`
	DataSize     int       `json:"data_size"`
	DataGetAt    string    `json:"data_get_at"`
	DataType     int       `json:"data_type"`
	Temperature  float64   `json:"temperature"`
	Moisture     float64   `json:"moisture"`
	EC           float64   `json:"ec"`
}

type WeatherReading struct {
	ID         int64     `json:"id"`
	SensorID   int64     `json:"sensor_id"`
	ReceivedAt time.Time `json:"received_at"`
	Tag        string    `json:"tag"`
	WindSpeed  float64   `json:"wind_speed"`
}

type Event struct {
	ID         int64     `json:"id"`
	Severity   Severity  `json:"severity"`
	Score      float64   `json:"score"`
	SensorID   int64     `json:"sensor_id"`
	Overridden bool      `json:"overridden"`
	CreatedAt  time.Time `json:"created_at"`
}
