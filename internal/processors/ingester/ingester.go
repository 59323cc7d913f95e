package ingester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slope-monitor/internal/detector"
	"slope-monitor/internal/frame"
	"slope-monitor/internal/metrics"
	"slope-monitor/internal/worker"

	k "slope-monitor/internal/kafka" // alias to avoid name conflict

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage   = errors.New("error reading message")
	ErrWriteMessage  = errors.New("error writing message")
	ErrCommitMessage = errors.New("error committing message")
)

type frameDetector interface {
	Detect(ctx context.Context, f *frame.Frame) (*detector.Result, error)
}

type observer interface {
	ObserveFrame(outcome string, took time.Duration)
	ObserveEvent(severity string, score float64)
}

type Config struct {
	Reader k.Reader
	Writer k.Writer

	// DeadLetter receives dropped raw frames. Nil disables it.
	DeadLetter k.Writer

	Parser   *frame.Parser
	Detector frameDetector
	Metrics  observer

	// EventKey keys published events, normally the sensor group name.
	EventKey    string
	MaxAttempts int
	Backoff     time.Duration
	ChangedOnly bool
	Legacy      bool
}

// Ingester consumes raw frames one at a time, runs them through the detector
// and publishes the resulting event.
type Ingester struct {
	worker     *worker.Worker
	reader     k.Reader
	writer     k.Writer
	deadLetter k.Writer
	parser     *frame.Parser
	detector   frameDetector
	metrics    observer

	eventKey    string
	maxAttempts int
	backoff     time.Duration
	changedOnly bool
	legacy      bool
}

func New(cfg Config) *Ingester {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	ingester := &Ingester{
		reader:      cfg.Reader,
		writer:      cfg.Writer,
		deadLetter:  cfg.DeadLetter,
		parser:      cfg.Parser,
		detector:    cfg.Detector,
		metrics:     cfg.Metrics,
		eventKey:    cfg.EventKey,
		maxAttempts: maxAttempts,
		backoff:     cfg.Backoff,
		changedOnly: cfg.ChangedOnly,
		legacy:      cfg.Legacy,
	}
	ingester.worker = worker.New(worker.Config{
		Name:         "ingester-worker",
		Processor:    ingester,
		ErrorBackoff: time.Second,
	})
	return ingester
}

func (i *Ingester) Run(ctx context.Context) {
	i.worker.Run(ctx)
}

func (i *Ingester) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing ingester resources...")
	i.reader.Close()
	if i.writer != nil {
		i.writer.Close()
	}
	if i.deadLetter != nil {
		i.deadLetter.Close()
	}
}

// ProcessMessage handles exactly one frame and commits it once it has been
// scored, stored or dropped. A frame is left uncommitted only when the
// context ends mid-flight.
func (i *Ingester) ProcessMessage(ctx context.Context) error {
	const fn = "Ingester:ProcessMessage"
	m, err := i.reader.FetchMessage(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	start := time.Now()
	frameID := uuid.NewString()
	logger := slog.Default().With("frame_id", frameID)

	f, err := i.parser.Parse(m.Value)
	if err != nil {
		logger.WarnContext(ctx, "Dropping malformed frame", "error", err, "raw", string(m.Value))
		return i.drop(ctx, m, frameID, 1, err, metrics.FrameParseError, start)
	}
	logger = logger.With("sensor_mac", f.MAC, "port", f.Port.String())

	res, attempts, err := i.detect(ctx, logger, f)
	switch {
	case err != nil && ctx.Err() != nil:
		return fmt.Errorf("%s:%w", fn, ctx.Err())
	case errors.Is(err, detector.ErrUnknownSensor):
		logger.WarnContext(ctx, "Dropping frame from unprovisioned sensor", "error", err)
		return i.drop(ctx, m, frameID, attempts, err, metrics.FrameUnknown, start)
	case err != nil:
		logger.ErrorContext(ctx, "Frame failed after retries", "attempts", attempts, "error", err)
		return i.drop(ctx, m, frameID, attempts, err, metrics.FrameFailed, start)
	}

	if res == nil {
		logger.InfoContext(ctx, "Frame stored without classification")
		i.observeFrame(metrics.FrameStored, start)
		return i.commit(ctx, m)
	}

	i.observeFrame(metrics.FrameScored, start)
	i.observeEvent(res)
	logger.InfoContext(ctx, "Frame classified",
		"severity", res.Severity.String(),
		"score", res.Score.Y,
		"changed", res.Changed,
		"overridden", res.Overridden,
	)

	pubErr := i.publish(ctx, res)
	if pubErr != nil {
		pubErr = fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, pubErr)
	}
	return errors.Join(pubErr, i.commit(ctx, m))
}

func (i *Ingester) detect(ctx context.Context, logger *slog.Logger, f *frame.Frame) (*detector.Result, int, error) {
	for attempt := 1; ; attempt++ {
		res, err := i.detector.Detect(ctx, f)
		if err == nil || !errors.Is(err, detector.ErrPersistence) || attempt >= i.maxAttempts {
			return res, attempt, err
		}
		logger.WarnContext(ctx, "Persistence failure, retrying frame", "attempt", attempt, "error", err)
		if err := sleep(ctx, i.backoff); err != nil {
			return nil, attempt, err
		}
	}
}

func (i *Ingester) publish(ctx context.Context, res *detector.Result) error {
	if i.writer == nil || (i.changedOnly && !res.Changed) {
		return nil
	}
	notification := k.EventNotification{Event: int(res.Severity)}
	if !i.legacy {
		changed := res.Changed
		notification.Changed = &changed
	}
	out, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return i.writer.WriteMessages(ctx, kafka.Message{Key: []byte(i.eventKey), Value: out})
}

// drop forwards the raw frame to the dead-letter writer and commits it so it
// is never redelivered.
func (i *Ingester) drop(ctx context.Context, m kafka.Message, frameID string, attempts int, cause error, outcome string, start time.Time) error {
	const fn = "Ingester:drop"
	i.observeFrame(outcome, start)
	var dlErr error
	if i.deadLetter != nil {
		if err := i.deadLetter.WriteMessages(ctx, k.DeadLetter(m, frameID, attempts, cause)); err != nil {
			dlErr = fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
		} else {
			i.observeFrame(metrics.FrameDeadLettered, start)
		}
	}
	return errors.Join(dlErr, i.commit(ctx, m))
}

func (i *Ingester) commit(ctx context.Context, m kafka.Message) error {
	const fn = "Ingester:commit"
	if err := i.reader.CommitMessages(ctx, m); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrCommitMessage, err)
	}
	return nil
}

func (i *Ingester) observeFrame(outcome string, start time.Time) {
	if i.metrics != nil {
		i.metrics.ObserveFrame(outcome, time.Since(start))
	}
}

func (i *Ingester) observeEvent(res *detector.Result) {
	if i.metrics != nil {
		i.metrics.ObserveEvent(res.Severity.String(), res.Score.Y)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
