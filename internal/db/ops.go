package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slope-monitor/internal/model"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

var (
	ErrInsertFailed           = errors.New("insert operation failed")
	ErrUpdateFailed           = errors.New("update operation failed")
	ErrTransactionStartFailed = errors.New("transaction start failed")
	ErrSelectFailed           = errors.New("select operation failed")
)

func (db *DB) ResolveSensor(ctx context.Context, port model.Port, mac string) (*model.Sensor, error) {
	const fn = "DB:ResolveSensor"
	var row sensorRow
	err := pgxscan.Get(ctx, db.pool, &row, `
		SELECT
			id,
			port,
			mac,
			name,
			threshold,
			calibration_table_id,
			hysteresis_until,
			created_at
		FROM sensors
		WHERE port = $1
		AND mac = $2
	`, int(port), mac)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s:%w", fn, model.ErrSensorNotFound)
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return row.toModel(), nil
}

func (db *DB) RegisterSensor(ctx context.Context, sensor model.Sensor) (*model.Sensor, error) {
	const fn = "DB:RegisterSensor"
	row, err := insertSensor(ctx, db.pool, sensor)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return row.toModel(), nil
}

// RegisterTiltSensor creates a tilt sensor together with the readings of the
// frame that introduced it. Either both are stored or neither is.
func (db *DB) RegisterTiltSensor(ctx context.Context, sensor model.Sensor, readings []model.TiltReading) (_ *model.Sensor, err error) {
	const fn = "DB:RegisterTiltSensor"
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrTransactionStartFailed, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	row, err := insertSensor(ctx, tx, sensor)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	if err = insertTiltReadings(ctx, tx, row.ID, readings); err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	return row.toModel(), nil
}

func insertSensor(ctx context.Context, q pgxscan.Querier, sensor model.Sensor) (*sensorRow, error) {
	until := sensor.HysteresisUntil
	if until.IsZero() {
		until = time.Unix(0, 0).UTC()
	}
	var row sensorRow
	err := pgxscan.Get(ctx, q, &row, `
		INSERT INTO sensors (
			port,
			mac,
			name,
			threshold,
			calibration_table_id,
			hysteresis_until
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
			id,
			port,
			mac,
			name,
			threshold,
			calibration_table_id,
			hysteresis_until,
			created_at
	`, int(sensor.Port), sensor.MAC, sensor.Name, sensor.Threshold, sensor.CalibrationTableID, until)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (db *DB) ListSensors(ctx context.Context) ([]model.Sensor, error) {
	const fn = "DB:ListSensors"
	var rows []sensorRow
	err := pgxscan.Select(ctx, db.pool, &rows, `
		SELECT
			id,
			port,
			mac,
			name,
			threshold,
			calibration_table_id,
			hysteresis_until,
			created_at
		FROM sensors
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	sensors := make([]model.Sensor, 0, len(rows))
	for _, r := range rows {
		sensors = append(sensors, *r.toModel())
	}
	return sensors, nil
}

// AppendTiltReadings stores the readings in order and records the table id
// reported by the last one on the sensor row.
func (db *DB) AppendTiltReadings(ctx context.Context, sensorID int64, readings []model.TiltReading) (err error) {
	const fn = "DB:AppendTiltReadings"
	if len(readings) == 0 {
		return nil
	}
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrTransactionStartFailed, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if err = insertTiltReadings(ctx, tx, sensorID, readings); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	return nil
}

func insertTiltReadings(ctx context.Context, tx pgx.Tx, sensorID int64, readings []model.TiltReading) error {
	if len(readings) == 0 {
		return nil
	}
	for _, r := range readings {
		_, err := tx.Exec(ctx, `
			INSERT INTO tilt_readings (
				sensor_id,
				received_at,
				node_id,
				node_state,
				battery_voltage,
				observed_at,
				tilt_x,
				tilt_y,
				temperature,
				table_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, sensorID, r.ReceivedAt, r.NodeID, int(r.NodeState), r.BatteryVoltage, r.ObservedAt,
			r.TiltX, r.TiltY, r.Temperature, r.TableID)
		if err != nil {
			return fmt.Errorf("%w:%w", ErrInsertFailed, err)
		}
	}

	_, err := tx.Exec(ctx, `
		UPDATE sensors
		SET calibration_table_id = $2
		WHERE id = $1
	`, sensorID, readings[len(readings)-1].TableID)
	if err != nil {
		return fmt.Errorf("%w:%w", ErrUpdateFailed, err)
	}
	return nil
}

func (db *DB) AppendSoilReading(ctx context.Context, sensorID int64, reading model.SoilReading) error {
	const fn = "DB:AppendSoilReading"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO soil_readings (
			sensor_id,
			received_at,
			command_id,
			sensor_type_id,
			data_size,
			data_get_at,
			data_type,
			temperature,
			moisture,
			ec
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sensorID, reading.ReceivedAt, reading.CommandID, reading.SensorTypeID, reading.DataSize,
		reading.DataGetAt, reading.DataType, reading.Temperature, reading.Moisture, reading.EC)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) AppendWeatherReading(ctx context.Context, sensorID int64, reading model.WeatherReading) error {
	const fn = "DB:AppendWeatherReading"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO weather_readings (
			sensor_id,
			received_at,
			tag,
			wind_speed
		) VALUES ($1, $2, $3, $4)
	`, sensorID, reading.ReceivedAt, reading.Tag, reading.WindSpeed)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

// LatestTiltReadings returns up to limit readings, newest first.
func (db *DB) LatestTiltReadings(ctx context.Context, sensorID int64, limit int) ([]model.TiltReading, error) {
	const fn = "DB:LatestTiltReadings"
	var rows []tiltReadingRow
	err := pgxscan.Select(ctx, db.pool, &rows, `
		SELECT
			id,
			sensor_id,
			received_at,
			node_id,
			node_state,
			battery_voltage,
			observed_at,
			tilt_x,
			tilt_y,
			temperature,
			table_id
		FROM tilt_readings
		WHERE sensor_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, sensorID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	readings := make([]model.TiltReading, 0, len(rows))
	for _, r := range rows {
		readings = append(readings, r.toModel())
	}
	return readings, nil
}

// LatestSoilReadings returns up to limit readings, newest first.
func (db *DB) LatestSoilReadings(ctx context.Context, sensorID int64, limit int) ([]model.SoilReading, error) {
	const fn = "DB:LatestSoilReadings"
	var rows []soilReadingRow
	err := pgxscan.Select(ctx, db.pool, &rows, `
		SELECT
			id,
			sensor_id,
			received_at,
			command_id,
			sensor_type_id,
			data_size,
			data_get_at,
			data_type,
			temperature,
			moisture,
			ec
		FROM soil_readings
		WHERE sensor_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, sensorID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	readings := make([]model.SoilReading, 0, len(rows))
	for _, r := range rows {
		readings = append(readings, r.toModel())
	}
	return readings, nil
}

// MinMoisture is the lowest moisture ever recorded for the sensor, 0 when it
// has no readings.
func (db *DB) MinMoisture(ctx context.Context, sensorID int64) (float64, error) {
	const fn = "DB:MinMoisture"
	var lowest float64
	err := db.pool.QueryRow(ctx, `
		SELECT COALESCE(MIN(moisture), 0)
		FROM soil_readings
		WHERE sensor_id = $1
	`, sensorID).Scan(&lowest)
	if err != nil {
		return 0, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return lowest, nil
}

func (db *DB) SetCalibrationTable(ctx context.Context, sensorID int64, tableID int, hysteresisUntil time.Time) error {
	const fn = "DB:SetCalibrationTable"
	tag, err := db.pool.Exec(ctx, `
		UPDATE sensors
		SET calibration_table_id = $2,
			hysteresis_until = $3
		WHERE id = $1
	`, sensorID, tableID, hysteresisUntil)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", fn, model.ErrSensorNotFound)
	}
	return nil
}

// PreviousEvent returns the most recent event, or nil when none exists yet.
func (db *DB) PreviousEvent(ctx context.Context) (*model.Event, error) {
	const fn = "DB:PreviousEvent"
	var row eventRow
	err := pgxscan.Get(ctx, db.pool, &row, `
		SELECT
			id,
			severity,
			score,
			sensor_id,
			overridden,
			created_at
		FROM events
		ORDER BY id DESC
		LIMIT 1
	`)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return row.toModel(), nil
}

func (db *DB) InsertEvent(ctx context.Context, event model.Event) (*model.Event, error) {
	const fn = "DB:InsertEvent"
	var sensorID *int64
	if event.SensorID != 0 {
		sensorID = &event.SensorID
	}
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var row eventRow
	err := pgxscan.Get(ctx, db.pool, &row, `
		INSERT INTO events (
			severity,
			score,
			sensor_id,
			overridden,
			created_at
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING
			id,
			severity,
			score,
			sensor_id,
			overridden,
			created_at
	`, int(event.Severity), event.Score, sensorID, event.Overridden, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return row.toModel(), nil
}

// ListEvents returns up to limit events, newest first.
func (db *DB) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	const fn = "DB:ListEvents"
	var rows []eventRow
	err := pgxscan.Select(ctx, db.pool, &rows, `
		SELECT
			id,
			severity,
			score,
			sensor_id,
			overridden,
			created_at
		FROM events
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, *r.toModel())
	}
	return events, nil
}
