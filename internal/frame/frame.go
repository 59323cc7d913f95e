package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"slope-monitor/internal/model"
)

var (
	ErrParse              = errors.New("malformed frame")
	ErrUnknownSensorClass = errors.New("unknown sensor class")
)

const (
	ReceivedAtLayout = "060102150405"
	WeatherTag       = "$WIXDR"
	WindFieldIndex   = 5

	tiltHeaderFields = 7
	tiltBlockFields  = 5
	soilFields       = 11
)

// Frame is one decoded record. Exactly one of Tilt, Soil or Weather is set.
type Frame struct {
	Port       model.Port
	MAC        string
	ReceivedAt time.Time
	Tilt       *Tilt
	Soil       *model.SoilReading
	Weather    *model.WeatherReading
}

type Tilt struct {
	NodeID         string
	NodeState      model.Severity
	BatteryVoltage float64
	Readings       []model.TiltReading
}

type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

// Parse decodes a comma-delimited frame. It has no side effects.
func (p *Parser) Parse(raw []byte) (*Frame, error) {
	const fn = "Parser:Parse"
	fields := strings.Split(strings.TrimSpace(string(raw)), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return nil, fmt.Errorf("%s:%w: expected at least 3 fields, got %d", fn, ErrParse, len(fields))
	}

	port, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%s:%w: port: %w", fn, ErrParse, err)
	}
	receivedAt, err := time.ParseInLocation(ReceivedAtLayout, fields[2], p.loc)
	if err != nil {
		return nil, fmt.Errorf("%s:%w: received_at: %w", fn, ErrParse, err)
	}

	f := &Frame{
		Port:       model.Port(port),
		MAC:        NormalizeMAC(fields[1]),
		ReceivedAt: receivedAt,
	}
	if f.MAC == "" {
		return nil, fmt.Errorf("%s:%w: empty mac", fn, ErrParse)
	}

	switch f.Port {
	case model.PortTilt:
		f.Tilt, err = parseTilt(fields, receivedAt)
	case model.PortSoil:
		f.Soil, err = parseSoil(fields, receivedAt)
	case model.PortWeather:
		f.Weather, err = parseWeather(fields, receivedAt)
	default:
		return nil, fmt.Errorf("%s:%w: %d", fn, ErrUnknownSensorClass, port)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	return f, nil
}

func NormalizeMAC(mac string) string {
	return strings.ToUpper(strings.TrimSpace(mac))
}

// [port, mac, received_at, node_id, node_state, battery_voltage, N,
// (observed_at, tilt_x, tilt_y, temperature, table_id) x N]
func parseTilt(fields []string, receivedAt time.Time) (*Tilt, error) {
	if len(fields) < tiltHeaderFields {
		return nil, fmt.Errorf("%w: tilt header needs %d fields, got %d", ErrParse, tiltHeaderFields, len(fields))
	}
	d := decoder{fields: fields}
	nodeState := d.int(4, "node_state")
	battery := d.float(5, "battery_voltage")
	n := d.int(6, "observation_count")
	if d.err != nil {
		return nil, d.err
	}
	if !model.Severity(nodeState).Valid() {
		return nil, fmt.Errorf("%w: node_state %d out of range", ErrParse, nodeState)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative observation count %d", ErrParse, n)
	}
	if n > (len(fields)-tiltHeaderFields)/tiltBlockFields {
		return nil, fmt.Errorf("%w: observation count %d exceeds the %d fields present", ErrParse, n, len(fields))
	}
	if want := tiltHeaderFields + tiltBlockFields*n; len(fields) != want {
		return nil, fmt.Errorf("%w: tilt frame with %d observations needs %d fields, got %d", ErrParse, n, want, len(fields))
	}

	t := &Tilt{
		NodeID:         fields[3],
		NodeState:      model.Severity(nodeState),
		BatteryVoltage: battery,
		Readings:       make([]model.TiltReading, 0, n),
	}
	for i := 0; i < n; i++ {
		base := tiltHeaderFields + tiltBlockFields*i
		r := model.TiltReading{
			ReceivedAt:     receivedAt,
			NodeID:         t.NodeID,
			NodeState:      t.NodeState,
			BatteryVoltage: battery,
			ObservedAt:     d.int64(base, "observed_at"),
			TiltX:          d.float(base+1, "tilt_x"),
			TiltY:          d.float(base+2, "tilt_y"),
			Temperature:    d.float(base+3, "temperature"),
			TableID:        d.int(base+4, "table_id"),
		}
		if d.err != nil {
			return nil, d.err
		}
		t.Readings = append(t.Readings, r)
	}
	return t, nil
}

// [port, mac, received_at, command_id, sensor_type_id, data_size,
// data_get_at, data_type, temperature, moisture, ec]
func parseSoil(fields []string, receivedAt time.Time) (*model.SoilReading, error) {
	if len(fields) != soilFields {
		return nil, fmt.Errorf("%w: soil frame needs %d fields, got %d", ErrParse, soilFields, len(fields))
	}
	d := decoder{fields: fields}
	r := &model.SoilReading{
		ReceivedAt:   receivedAt,
		CommandID:    d.int(3, "command_id"),
		SensorTypeID: d.int(4, "sensor_type_id"),
		DataSize:     d.int(5, "data_size"),
		DataGetAt:    fields[6],
		DataType:     d.int(7, "data_type"),
		Temperature:  d.float(8, "temperature"),
		Moisture:     d.float(9, "moisture"),
		EC:           d.float(10, "ec"),
	}
	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}

// [port, mac, received_at, $WIXDR, ..., wind at WindFieldIndex, ...]
func parseWeather(fields []string, receivedAt time.Time) (*model.WeatherReading, error) {
	if len(fields) <= WindFieldIndex {
		return nil, fmt.Errorf("%w: weather frame needs at least %d fields, got %d", ErrParse, WindFieldIndex+1, len(fields))
	}
	if fields[3] != WeatherTag {
		return nil, fmt.Errorf("%w: unexpected weather tag %q", ErrParse, fields[3])
	}
	d := decoder{fields: fields}
	r := &model.WeatherReading{
		ReceivedAt: receivedAt,
		Tag:        fields[3],
		WindSpeed:  d.float(WindFieldIndex, "wind"),
	}
	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}

// decoder keeps the first conversion error so field lists read linearly.
type decoder struct {
	fields []string
	err    error
}

func (d *decoder) int(i int, name string) int {
	return int(d.int64(i, name))
}

func (d *decoder) int64(i int, name string) int64 {
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(d.fields[i], 10, 64)
	if err != nil {
		d.err = fmt.Errorf("%w: field %d (%s): %w", ErrParse, i, name, err)
	}
	return v
}

func (d *decoder) float(i int, name string) float64 {
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(d.fields[i], 64)
	if err != nil {
		d.err = fmt.Errorf("%w: field %d (%s): %w", ErrParse, i, name, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		d.err = fmt.Errorf("%w: field %d (%s): non-finite value %q", ErrParse, i, name, d.fields[i])
		return 0
	}
	return v
}
