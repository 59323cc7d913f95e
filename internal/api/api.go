package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"slope-monitor/internal/frame"
	"slope-monitor/internal/metrics"
	"slope-monitor/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type repository interface {
	Ping(ctx context.Context) error
	ListEvents(ctx context.Context, limit int) ([]model.Event, error)
	PreviousEvent(ctx context.Context) (*model.Event, error)
	ListSensors(ctx context.Context) ([]model.Sensor, error)
	ResolveSensor(ctx context.Context, port model.Port, mac string) (*model.Sensor, error)
	LatestTiltReadings(ctx context.Context, sensorID int64, limit int) ([]model.TiltReading, error)
}

type API struct {
	DB      repository
	Metrics *metrics.Metrics
}

type Config struct {
	DB      repository
	Metrics *metrics.Metrics
}

func New(cfg Config) *API {
	return &API{DB: cfg.DB, Metrics: cfg.Metrics}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/health", a.Metrics.WrapHandler("/health", http.HandlerFunc(a.Health)))
	r.Method(http.MethodGet, "/events", a.Metrics.WrapHandler("/events", http.HandlerFunc(a.ListEvents)))
	r.Method(http.MethodGet, "/events/latest", a.Metrics.WrapHandler("/events/latest", http.HandlerFunc(a.LatestEvent)))
	r.Method(http.MethodGet, "/sensors", a.Metrics.WrapHandler("/sensors", http.HandlerFunc(a.ListSensors)))
	r.Method(http.MethodGet, "/sensors/{mac}/readings", a.Metrics.WrapHandler("/sensors/{mac}/readings", http.HandlerFunc(a.ListReadings)))
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	return r
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if err := a.DB.Ping(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "Health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (a *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	events, err := a.DB.ListEvents(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := ListEventsResponse{Events: make([]Event, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, toEvent(e))
	}
	writeJSON(w, resp)
}

func (a *API) LatestEvent(w http.ResponseWriter, r *http.Request) {
	event, err := a.DB.PreviousEvent(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if event == nil {
		http.Error(w, "no events yet", http.StatusNotFound)
		return
	}
	writeJSON(w, toEvent(*event))
}

func (a *API) ListSensors(w http.ResponseWriter, r *http.Request) {
	sensors, err := a.DB.ListSensors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := ListSensorsResponse{Sensors: make([]Sensor, 0, len(sensors))}
	for _, s := range sensors {
		resp.Sensors = append(resp.Sensors, toSensor(s))
	}
	writeJSON(w, resp)
}

// ListReadings returns the newest tilt readings of one tilt sensor.
func (a *API) ListReadings(w http.ResponseWriter, r *http.Request) {
	mac := frame.NormalizeMAC(chi.URLParam(r, "mac"))
	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	sensor, err := a.DB.ResolveSensor(r.Context(), model.PortTilt, mac)
	if errors.Is(err, model.ErrSensorNotFound) {
		http.Error(w, "unknown sensor", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	readings, err := a.DB.LatestTiltReadings(r.Context(), sensor.ID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := ListReadingsResponse{MAC: sensor.MAC, Readings: make([]TiltReading, 0, len(readings))}
	for _, rd := range readings {
		resp.Readings = append(resp.Readings, TiltReading{
			ID:          rd.ID,
			ReceivedAt:  rd.ReceivedAt.Format(time.RFC3339),
			NodeState:   int(rd.NodeState),
			ObservedAt:  rd.ObservedAt,
			TiltX:       rd.TiltX,
			TiltY:       rd.TiltY,
			Temperature: rd.Temperature,
			TableID:     rd.TableID,
		})
	}
	writeJSON(w, resp)
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(limit, MaxLimit), nil
}

func toEvent(e model.Event) Event {
	return Event{
		ID:         e.ID,
		Event:      int(e.Severity),
		Severity:   e.Severity.String(),
		Score:      e.Score,
		SensorID:   e.SensorID,
		Overridden: e.Overridden,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func toSensor(s model.Sensor) Sensor {
	out := Sensor{
		ID:                 s.ID,
		Class:              s.Port.String(),
		Port:               int(s.Port),
		MAC:                s.MAC,
		Name:               s.Name,
		Threshold:          s.Threshold,
		CalibrationTableID: s.CalibrationTableID,
	}
	if s.HysteresisUntil.After(time.Unix(0, 0)) {
		out.HysteresisUntil = s.HysteresisUntil.Format(time.RFC3339)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
