package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slope-monitor/internal/worker"

	k "slope-monitor/internal/kafka"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage   = errors.New("error reading message")
	ErrWriteMessage  = errors.New("error writing message")
	ErrCommitMessage = errors.New("error committing message")
)

type Config struct {
	Reader k.Reader
	Writer k.Writer

	// Key is attached to every forwarded frame so a group stays on one partition.
	Key string
}

// Relay bridges raw frames from the device bus onto the durable frame topic.
type Relay struct {
	worker *worker.Worker
	reader k.Reader
	writer k.Writer
	key    []byte
}

func New(cfg Config) *Relay {
	relay := &Relay{
		reader: cfg.Reader,
		writer: cfg.Writer,
		key:    []byte(cfg.Key),
	}
	relay.worker = worker.New(worker.Config{
		Name:         "relay-worker",
		Processor:    relay,
		ErrorBackoff: time.Second,
	})
	return relay
}

func (r *Relay) Run(ctx context.Context) {
	r.worker.Run(ctx)
}

func (r *Relay) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing relay resources...")
	r.reader.Close()
	r.writer.Close()
}

func (r *Relay) ProcessMessage(ctx context.Context) error {
	const fn = "Relay:ProcessMessage"
	m, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	err = r.writer.WriteMessages(ctx, kafka.Message{Key: r.key, Value: m.Value})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	if err := r.reader.CommitMessages(ctx, m); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrCommitMessage, err)
	}
	slog.DebugContext(ctx, "Relayed frame", "group", string(r.key), "bytes", len(m.Value))
	return nil
}
