package mqtt

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"
)

type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Publisher adapts an MQTT topic to the bus Writer. Message keys are dropped;
// MQTT has no partitioning.
type Publisher struct {
	client  publishClient
	topic   string
	qos     byte
	timeout time.Duration
}

type PublisherConfig struct {
	Topic   string
	QoS     byte
	Timeout time.Duration
}

func NewPublisher(client publishClient, cfg PublisherConfig) *Publisher {
	return &Publisher{
		client:  client,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: cfg.Timeout,
	}
}

func (p *Publisher) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	const fn = "MQTT:WriteMessages"
	for _, m := range msgs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
		}
		topic := p.topic
		if m.Topic != "" {
			topic = m.Topic
		}
		if err := wait(p.client.Publish(topic, p.qos, false, m.Value), p.timeout); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
		}
	}
	return nil
}

func (p *Publisher) Close() error {
	return nil
}
