package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrConnect   = errors.New("mqtt connect failed")
	ErrSubscribe = errors.New("mqtt subscribe failed")
	ErrPublish   = errors.New("mqtt publish failed")
	ErrTimeout   = errors.New("mqtt operation timed out")
	ErrClosed    = errors.New("mqtt subscription closed")
)

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// Connect dials the broker. The session is persistent so subscriptions
// survive an automatic reconnect.
func Connect(ctx context.Context, cfg Config) (paho.Client, error) {
	const fn = "MQTT:Connect"
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true).
		SetCleanSession(false).
		SetResumeSubs(true).
		SetOrderMatters(true)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		slog.WarnContext(ctx, "MQTT connection lost", "broker", cfg.Broker, "error", err)
	})
	opts.SetOnConnectHandler(func(_ paho.Client) {
		slog.InfoContext(ctx, "MQTT connected", "broker", cfg.Broker, "client_id", cfg.ClientID)
	})

	client := paho.NewClient(opts)
	if err := wait(client.Connect(), cfg.Timeout); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnect, err)
	}
	return client, nil
}

func wait(token paho.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}
