package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ystepanoff/rssilink/display"
	"github.com/ystepanoff/rssilink/driver/stub"
	"github.com/ystepanoff/rssilink/internal/config"
	"github.com/ystepanoff/rssilink/internal/metrics"
	"github.com/ystepanoff/rssilink/internal/mqtt"
	"github.com/ystepanoff/rssilink/source"
	"github.com/ystepanoff/rssilink/transport"
	"github.com/ystepanoff/rssilink/trigger"
)

// node holds what one command builds from the configuration, so that it
// can be torn down in one place.
type node struct {
	cfg    *config.Config
	logger *zap.Logger
	role   string
	client mqtt.Client
}

func newNode(cfg *config.Config, logger *zap.Logger, role string) *node {
	return &node{cfg: cfg, logger: logger, role: role}
}

// mqttClient connects lazily; the link and the display share one session.
func (n *node) mqttClient() (mqtt.Client, error) {
	if n.client != nil {
		return n.client, nil
	}
	// A broker drops the older of two sessions sharing a client ID.
	mc := n.cfg.MQTT
	mc.ClientID = fmt.Sprintf("%s-%s", mc.ClientID, n.role)
	c := mqtt.NewClient(mc)
	if err := mqtt.Connect(c, n.cfg.MQTT.Timeout, n.logger); err != nil {
		return nil, err
	}
	n.client = c
	return c, nil
}

func (n *node) close() {
	if n.client != nil {
		n.client.Disconnect(250)
		n.logger.Info("mqtt disconnected")
	}
	_ = n.logger.Sync()
}

func (n *node) driver() (transport.RadioDriver, error) {
	switch n.cfg.Link.Driver {
	case "mqtt":
		c, err := n.mqttClient()
		if err != nil {
			return nil, err
		}
		return mqtt.NewLink(c, n.cfg.MQTT, n.logger), nil
	default:
		n.logger.Warn("stub radio has no peer outside this process; frames go nowhere")
		return stub.New(), nil
	}
}

func (n *node) source() (transport.SignalSource, error) {
	switch n.cfg.Source.Kind {
	case "sequence":
		return source.NewSequence(n.cfg.Source.Values, true), nil
	default:
		return source.NewWireless(n.cfg.Source.ProcRoot, n.cfg.Source.Interface, n.logger)
	}
}

// trigger builds the start button. The manual trigger fires once per line
// read from in.
func (n *node) trigger(ctx context.Context, in io.Reader) transport.TriggerInput {
	if n.cfg.Trigger.Kind == "interval" {
		return trigger.NewInterval(transport.SystemClock, n.cfg.Trigger.Interval)
	}
	m := trigger.NewManual(transport.SystemClock, n.cfg.Transmitter.TriggerPoll)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			m.Fire()
		}
	}()
	n.logger.Info("press Enter to start a measurement")
	return m
}

func (n *node) display(out io.Writer) (transport.DisplayOutput, error) {
	if n.cfg.Display.Kind == "mqtt" {
		c, err := n.mqttClient()
		if err != nil {
			return nil, err
		}
		return mqtt.NewDisplay(c, n.cfg.MQTT, n.logger), nil
	}
	return display.NewConsole(out, n.logger), nil
}

// recorder returns nil when no metrics endpoint is configured. Otherwise it
// serves /metrics until ctx is done.
func (n *node) recorder(ctx context.Context) transport.Recorder {
	addr := n.cfg.Metrics.Listen
	if addr == "" {
		return nil
	}
	rec := metrics.New(n.role)

	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			n.logger.Error("metrics server failed", zap.String("listen", addr), zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	n.logger.Info("metrics endpoint listening", zap.String("listen", addr))
	return rec
}

// stopped maps a cancelled run to a clean exit.
func stopped(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("session stopped: %w", err)
}
