package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Config struct {
	Name      string
	Processor Processor
	// ErrorBackoff is the pause after a failed message. Zero means no pause.
	ErrorBackoff time.Duration
}

type Processor interface {
	ProcessMessage(ctx context.Context) error
}

type Worker struct {
	name         string
	processor    Processor
	errorBackoff time.Duration
}

func New(cfg Config) *Worker {
	return &Worker{
		name:         cfg.Name,
		processor:    cfg.Processor,
		errorBackoff: cfg.ErrorBackoff,
	}
}

func (w *Worker) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Worker started...", "worker", w.name)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)
			return
		default:
			err := w.processor.ProcessMessage(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			slog.ErrorContext(ctx, "Error processing message", "worker", w.name, "error", err)
			w.pause(ctx)
		}
	}
}

func (w *Worker) pause(ctx context.Context) {
	if w.errorBackoff <= 0 {
		return
	}
	t := time.NewTimer(w.errorBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
