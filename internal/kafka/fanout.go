package kafka

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
)

// Fanout publishes every message to each of its writers. A failing writer
// does not stop delivery to the others.
type Fanout []Writer

func (f Fanout) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	var errs []error
	for _, w := range f {
		if err := w.WriteMessages(ctx, msgs...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, w := range f {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
