package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"slope-monitor/internal/actuator"
	"slope-monitor/internal/api"
	"slope-monitor/internal/config"
	"slope-monitor/internal/db"
	"slope-monitor/internal/detector"
	"slope-monitor/internal/frame"
	"slope-monitor/internal/metrics"
	"slope-monitor/internal/mqtt"
	"slope-monitor/internal/processors/ingester"
	"slope-monitor/internal/processors/relay"

	k "slope-monitor/internal/kafka" // alias to avoid name conflict

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the detection pipeline and HTTP API",
	Long: `Consume sensor frames from the configured transport, score and classify
them, push calibration changes to the gateway and publish events. The HTTP
API serves health, metrics and event history alongside the pipeline.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Starting service...", "transport", cfg.Transport, "relay", cfg.Relay.Enabled, "group", cfg.Group.Name)

	store, err := db.Init(ctx, db.Config{
		ConnString:     cfg.DB.URL,
		MigrationsPath: cfg.DB.MigrationsPath,
		MaxConns:       cfg.DB.MaxConns,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	m := metrics.New()
	det, err := newDetector(store, m)
	if err != nil {
		return err
	}

	var client paho.Client
	if cfg.Transport == config.TransportMQTT || cfg.Relay.Enabled {
		client, err = mqtt.Connect(ctx, mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Timeout:  cfg.MQTT.Timeout,
		})
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
	}

	var wRelay *relay.Relay
	var frames k.Reader
	switch {
	case cfg.Relay.Enabled:
		sub, err := subscribeFrames(client)
		if err != nil {
			return err
		}
		wRelay = relay.New(relay.Config{
			Reader: sub,
			Writer: k.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.FrameTopic),
			Key:    cfg.Group.Name,
		})
		frames = kafkaFrames()
	case cfg.Transport == config.TransportKafka:
		frames = kafkaFrames()
	default:
		if frames, err = subscribeFrames(client); err != nil {
			return err
		}
	}

	var events k.Fanout
	if client != nil && cfg.MQTT.EventTopic != "" {
		events = append(events, mqtt.NewPublisher(client, mqtt.PublisherConfig{
			Topic:   cfg.MQTT.EventTopic,
			QoS:     cfg.MQTT.QoS,
			Timeout: cfg.MQTT.Timeout,
		}))
	}
	if cfg.Kafka.EventTopic != "" {
		events = append(events, k.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.EventTopic))
	}
	var deadLetter k.Writer
	if cfg.Kafka.DeadLetterTopic != "" {
		deadLetter = k.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.DeadLetterTopic)
	}

	wIngester := ingester.New(ingester.Config{
		Reader:      frames,
		Writer:      events,
		DeadLetter:  deadLetter,
		Parser:      frame.NewParser(loc),
		Detector:    det,
		Metrics:     m,
		EventKey:    cfg.Group.Name,
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     cfg.Retry.Backoff,
		ChangedOnly: cfg.Publish.ChangedOnly,
		Legacy:      cfg.Publish.Legacy,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.New(api.Config{DB: store, Metrics: m}).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg := sync.WaitGroup{}
	wg.Go(func() {
		wIngester.Run(ctx)
	})
	if wRelay != nil {
		wg.Go(func() {
			wRelay.Run(ctx)
		})
	}
	wg.Go(func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
		}
	})
	wg.Go(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
		}
	})

	wg.Wait()

	if wRelay != nil {
		wRelay.Close(ctx)
	}
	wIngester.Close(ctx)
	slog.InfoContext(ctx, "Service stopped")
	return nil
}

func newDetector(store *db.DB, m *metrics.Metrics) (*detector.Detector, error) {
	roles, err := cfg.Group.RoleMap()
	if err != nil {
		return nil, err
	}
	soil := cfg.Group.Soil
	if soil != "" {
		soil = frame.NormalizeMAC(soil)
	}
	group, err := detector.NewGroup(detector.GroupConfig{
		Name:        cfg.Group.Name,
		Roles:       roles,
		Independent: cfg.Group.Independent,
		SoilMAC:     soil,
	})
	if err != nil {
		return nil, err
	}

	tables, err := cfg.Calibration.TableMap()
	if err != nil {
		return nil, err
	}
	chain, err := cfg.Calibration.ChainSteps()
	if err != nil {
		return nil, err
	}
	policy, err := detector.NewPolicy(detector.PolicyKind(cfg.Calibration.Policy), tables, chain)
	if err != nil {
		return nil, err
	}

	gateway, err := actuator.New(actuator.Config{
		URL:                cfg.Actuator.URL,
		CertFile:           cfg.Actuator.CertFile,
		KeyFile:            cfg.Actuator.KeyFile,
		InsecureSkipVerify: cfg.Actuator.InsecureSkipVerify,
		Timeout:            cfg.Actuator.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return detector.New(detector.Config{
		Store:    store,
		Events:   store,
		Actuator: gateway,
		Group:    group,
		Observer: m,
		Thresholds: detector.Thresholds{
			Alert:   cfg.Detection.AlertThreshold,
			Caution: cfg.Detection.CautionThreshold,
		},
		WindLimit:            cfg.Detection.WindLimit,
		DefaultTiltThreshold: cfg.Detection.DefaultTiltThreshold,
		HysteresisWindow:     cfg.Detection.HysteresisWindow,
		Score: detector.ScoreParams{
			B:     cfg.Detection.B,
			C:     cfg.Detection.C,
			D:     cfg.Detection.D,
			Delta: cfg.Detection.Delta,
		},
		Policy: policy,
	})
}

func subscribeFrames(client paho.Client) (*mqtt.Subscriber, error) {
	return mqtt.Subscribe(client, mqtt.SubscriberConfig{
		Topic:   cfg.MQTT.DataTopic,
		QoS:     cfg.MQTT.QoS,
		Buffer:  cfg.MQTT.Buffer,
		Timeout: cfg.MQTT.Timeout,
	})
}

func kafkaFrames() k.Reader {
	return k.NewReader(k.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.FrameTopic,
	})
}
