package db

import (
	"time"

	"slope-monitor/internal/model"
)

type sensorRow struct {
	ID                 int64     `db:"id"`
	Port               int       `db:"port"`
	MAC                string    `db:"mac"`
	Name               string    `db:"name"`
	Threshold          float64   `db:"threshold"`
	CalibrationTableID int       `db:"calibration_table_id"`
	HysteresisUntil    time.Time `db:"hysteresis_until"`
	CreatedAt          time.Time `db:"created_at"`
}

func (r sensorRow) toModel() *model.Sensor {
	return &model.Sensor{
		ID:                 r.ID,
		Port:               model.Port(r.Port),
		MAC:                r.MAC,
		Name:               r.Name,
		Threshold:          r.Threshold,
		CalibrationTableID: r.CalibrationTableID,
		HysteresisUntil:    r.HysteresisUntil,
		CreatedAt:          r.CreatedAt,
	}
}

type tiltReadingRow struct {
	ID             int64     `db:"id"`
	SensorID       int64     `db:"sensor_id"`
	ReceivedAt     time.Time `db:"received_at"`
	NodeID         string    `db:"node_id"`
	NodeState      int       `db:"node_state"`
	BatteryVoltage float64   `db:"battery_voltage"`
	ObservedAt     int64     `db:"observed_at"`
	TiltX          float64   `db:"tilt_x"`
	TiltY          float64   `db:"tilt_y"`
	Temperature    float64   `db:"temperature"`
	TableID        int       `db:"table_id"`
}

func (r tiltReadingRow) toModel() model.TiltReading {
	return model.TiltReading{
		ID:             r.ID,
		SensorID:       r.SensorID,
		ReceivedAt:     r.ReceivedAt,
		NodeID:         r.NodeID,
		NodeState:      model.Severity(r.NodeState),
		BatteryVoltage: r.BatteryVoltage,
		ObservedAt:     r.ObservedAt,
		TiltX:          r.TiltX,
		TiltY:          r.TiltY,
		Temperature:    r.Temperature,
		TableID:        r.TableID,
	}
}

type soilReadingRow struct {
	ID           int64     `db:"id"`
	SensorID     int64     `db:"sensor_id"`
	ReceivedAt   time.Time `db:"received_at"`
	CommandID    int       `db:"command_id"`
	SensorTypeID int       `db:"sensor_type_id"`
	DataSize     int       `db:"data_size"`
	DataGetAt    string    `db:"data_get_at"`
	DataType     int       `db:"data_type"`
	Temperature  float64   `db:"temperature"`
	Moisture     float64   `db:"moisture"`
	EC           float64   `db:"ec"`
}

func (r soilReadingRow) toModel() model.SoilReading {
	return model.SoilReading{
		ID:           r.ID,
		SensorID:     r.SensorID,
		ReceivedAt:   r.ReceivedAt,
		CommandID:    r.CommandID,
		SensorTypeID: r.SensorTypeID,
		DataSize:     r.DataSize,
		DataGetAt:    r.DataGetAt,
		DataType:     r.DataType,
		Temperature:  r.Temperature,
		Moisture:     r.Moisture,
		EC:           r.EC,
	}
}

type eventRow struct {
	ID         int64     `db:"id"`
	Severity   int       `db:"severity"`
	Score      float64   `db:"score"`
	SensorID   *int64    `db:"sensor_id"`
	Overridden bool      `db:"overridden"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r eventRow) toModel() *model.Event {
	e := &model.Event{
		ID:         r.ID,
		Severity:   model.Severity(r.Severity),
		Score:      r.Score,
		Overridden: r.Overridden,
		CreatedAt:  r.CreatedAt,
	}
	if r.SensorID != nil {
		e.SensorID = *r.SensorID
	}
	return e
}
