package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Frame outcomes.
const (
	FrameScored       = "scored"
	FrameStored       = "stored"
	FrameParseError   = "parse_error"
	FrameUnknown      = "unknown_sensor"
	FrameFailed       = "persistence_error"
	FrameDeadLettered = "dead_lettered"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	frames        *prometheus.CounterVec
	frameDuration prometheus.Histogram
	events        *prometheus.CounterVec
	lastScore     prometheus.Gauge
	actuations    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slope_frames_total",
			Help: "Frames consumed, by outcome.",
		}, []string{"outcome"}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slope_frame_duration_seconds",
			Help:    "Time to process one frame end to end, actuation included.",
			Buckets: prometheus.DefBuckets,
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slope_events_total",
			Help: "Events written, by severity.",
		}, []string{"severity"}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slope_event_score",
			Help: "Score of the most recent event (-1 for absolute overrides).",
		}),
		actuations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slope_actuations_total",
			Help: "Calibration decisions per target sensor, by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.frames,
		m.frameDuration,
		m.events,
		m.lastScore,
		m.actuations,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveFrame(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(outcome).Inc()
	m.frameDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveEvent(severity string, score float64) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(severity).Inc()
	m.lastScore.Set(score)
}

func (m *Metrics) ObserveActuation(outcome string) {
	if m == nil {
		return
	}
	m.actuations.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler counts and times every request under the given route label.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m != nil {
			m.httpRequests.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}
