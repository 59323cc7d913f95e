package detector

import (
	"context"
	"fmt"
	"time"

	"slope-monitor/internal/model"
)

// memStore is an in-memory store and event log for detector tests.
type memStore struct {
	nextID  int64
	sensors map[int64]*model.Sensor
	tilt    map[int64][]model.TiltReading
	soil    map[int64][]model.SoilReading
	weather map[int64][]model.WeatherReading
	events  []model.Event

	// failOn makes the named method return the error.
	failOn map[string]error
	writes int
}

func newMemStore() *memStore {
	return &memStore{
		sensors: make(map[int64]*model.Sensor),
		tilt:    make(map[int64][]model.TiltReading),
		soil:    make(map[int64][]model.SoilReading),
		weather: make(map[int64][]model.WeatherReading),
		failOn:  make(map[string]error),
	}
}

func (m *memStore) fail(method string) error {
	return m.failOn[method]
}

func (m *memStore) add(s model.Sensor) *model.Sensor {
	m.nextID++
	s.ID = m.nextID
	m.sensors[s.ID] = &s
	out := s
	return &out
}

func (m *memStore) addTilt(mac string, threshold float64, table int, history ...[2]float64) *model.Sensor {
	s := m.add(model.Sensor{Port: model.PortTilt, MAC: mac, Name: mac, Threshold: threshold, CalibrationTableID: table})
	for _, h := range history {
		m.tilt[s.ID] = append(m.tilt[s.ID], model.TiltReading{SensorID: s.ID, TiltX: h[0], TiltY: h[1], TableID: table})
	}
	return s
}

func (m *memStore) addSoil(mac string, moisture ...float64) *model.Sensor {
	s := m.add(model.Sensor{Port: model.PortSoil, MAC: mac, Name: mac})
	for _, v := range moisture {
		m.soil[s.ID] = append(m.soil[s.ID], model.SoilReading{SensorID: s.ID, Moisture: v})
	}
	return s
}

func (m *memStore) sensor(mac string) *model.Sensor {
	for _, s := range m.sensors {
		if s.MAC == mac {
			out := *s
			return &out
		}
	}
	return nil
}

func (m *memStore) ResolveSensor(_ context.Context, port model.Port, mac string) (*model.Sensor, error) {
	if err := m.fail("ResolveSensor"); err != nil {
		return nil, err
	}
	for _, s := range m.sensors {
		if s.Port == port && s.MAC == mac {
			out := *s
			return &out, nil
		}
	}
	return nil, fmt.Errorf("memStore:%w", model.ErrSensorNotFound)
}

func (m *memStore) RegisterSensor(_ context.Context, sensor model.Sensor) (*model.Sensor, error) {
	if err := m.fail("RegisterSensor"); err != nil {
		return nil, err
	}
	m.writes++
	return m.add(sensor), nil
}

// RegisterTiltSensor is all or nothing, like the database transaction.
func (m *memStore) RegisterTiltSensor(ctx context.Context, sensor model.Sensor, readings []model.TiltReading) (*model.Sensor, error) {
	if err := m.fail("RegisterTiltSensor"); err != nil {
		return nil, err
	}
	if err := m.fail("AppendTiltReadings"); err != nil {
		return nil, err
	}
	s, err := m.RegisterSensor(ctx, sensor)
	if err != nil {
		return nil, err
	}
	if err := m.AppendTiltReadings(ctx, s.ID, readings); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *memStore) AppendTiltReadings(_ context.Context, sensorID int64, readings []model.TiltReading) error {
	if err := m.fail("AppendTiltReadings"); err != nil {
		return err
	}
	m.writes++
	for _, r := range readings {
		r.SensorID = sensorID
		m.tilt[sensorID] = append(m.tilt[sensorID], r)
	}
	if n := len(readings); n > 0 {
		m.sensors[sensorID].CalibrationTableID = readings[n-1].TableID
	}
	return nil
}

func (m *memStore) AppendSoilReading(_ context.Context, sensorID int64, reading model.SoilReading) error {
	if err := m.fail("AppendSoilReading"); err != nil {
		return err
	}
	m.writes++
	reading.SensorID = sensorID
	m.soil[sensorID] = append(m.soil[sensorID], reading)
	return nil
}

func (m *memStore) AppendWeatherReading(_ context.Context, sensorID int64, reading model.WeatherReading) error {
	if err := m.fail("AppendWeatherReading"); err != nil {
		return err
	}
	m.writes++
	reading.SensorID = sensorID
	m.weather[sensorID] = append(m.weather[sensorID], reading)
	return nil
}

func (m *memStore) LatestTiltReadings(_ context.Context, sensorID int64, limit int) ([]model.TiltReading, error) {
	if err := m.fail("LatestTiltReadings"); err != nil {
		return nil, err
	}
	all := m.tilt[sensorID]
	var out []model.TiltReading
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *memStore) LatestSoilReadings(_ context.Context, sensorID int64, limit int) ([]model.SoilReading, error) {
	if err := m.fail("LatestSoilReadings"); err != nil {
		return nil, err
	}
	all := m.soil[sensorID]
	var out []model.SoilReading
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *memStore) MinMoisture(_ context.Context, sensorID int64) (float64, error) {
	if err := m.fail("MinMoisture"); err != nil {
		return 0, err
	}
	all := m.soil[sensorID]
	if len(all) == 0 {
		return 0, nil
	}
	lowest := all[0].Moisture
	for _, r := range all[1:] {
		if r.Moisture < lowest {
			lowest = r.Moisture
		}
	}
	return lowest, nil
}

func (m *memStore) SetCalibrationTable(_ context.Context, sensorID int64, tableID int, hysteresisUntil time.Time) error {
	if err := m.fail("SetCalibrationTable"); err != nil {
		return err
	}
	m.writes++
	s := m.sensors[sensorID]
	s.CalibrationTableID = tableID
	s.HysteresisUntil = hysteresisUntil
	return nil
}

func (m *memStore) PreviousEvent(_ context.Context) (*model.Event, error) {
	if err := m.fail("PreviousEvent"); err != nil {
		return nil, err
	}
	if len(m.events) == 0 {
		return nil, nil
	}
	e := m.events[len(m.events)-1]
	return &e, nil
}

func (m *memStore) InsertEvent(_ context.Context, event model.Event) (*model.Event, error) {
	if err := m.fail("InsertEvent"); err != nil {
		return nil, err
	}
	m.writes++
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return &event, nil
}
