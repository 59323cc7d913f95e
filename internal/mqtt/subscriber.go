package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"
)

type subscribeClient interface {
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Unsubscribe(topics ...string) paho.Token
}

// Subscriber adapts an MQTT subscription to the bus Reader. The paho callback
// blocks on a bounded channel, so the broker client stops delivering while
// the consumer is still busy with earlier frames.
type Subscriber struct {
	client  subscribeClient
	topic   string
	timeout time.Duration
	msgs    chan kafka.Message
	closed  chan struct{}
	once    sync.Once
}

type SubscriberConfig struct {
	Topic   string
	QoS     byte
	Buffer  int
	Timeout time.Duration
}

func Subscribe(client subscribeClient, cfg SubscriberConfig) (*Subscriber, error) {
	const fn = "MQTT:Subscribe"
	s := &Subscriber{
		client:  client,
		topic:   cfg.Topic,
		timeout: cfg.Timeout,
		msgs:    make(chan kafka.Message, cfg.Buffer),
		closed:  make(chan struct{}),
	}
	if err := wait(client.Subscribe(cfg.Topic, cfg.QoS, s.handle), cfg.Timeout); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSubscribe, err)
	}
	return s, nil
}

func (s *Subscriber) handle(_ paho.Client, m paho.Message) {
	payload := make([]byte, len(m.Payload()))
	copy(payload, m.Payload())
	msg := kafka.Message{
		Topic: m.Topic(),
		Value: payload,
		Time:  time.Now(),
	}
	select {
	case s.msgs <- msg:
	case <-s.closed:
	}
}

func (s *Subscriber) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case <-s.closed:
		return kafka.Message{}, ErrClosed
	case m := <-s.msgs:
		return m, nil
	}
}

// CommitMessages is a no-op: paho acknowledges a message once its handler
// has handed it over.
func (s *Subscriber) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}

func (s *Subscriber) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closed)
		err = wait(s.client.Unsubscribe(s.topic), s.timeout)
	})
	return err
}
