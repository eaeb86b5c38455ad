// Package mqtt carries frames and summaries over an MQTT broker, so two
// hosts without radios can stand in for the two nodes.
package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
)

// Client is the part of pahomqtt.Client used here.
type Client interface {
	IsConnected() bool
	Connect() pahomqtt.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Subscribe(topic string, qos byte, callback pahomqtt.MessageHandler) pahomqtt.Token
	Unsubscribe(topics ...string) pahomqtt.Token
}

var _ Client = pahomqtt.Client(nil)

// NewClient builds an unconnected paho client from cfg.
func NewClient(cfg Config) pahomqtt.Client {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(cfg.Timeout)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password) //nolint:gosec // G101: config field
	}
	return pahomqtt.NewClient(opts)
}

// Connect connects c unless it already is, waiting at most timeout.
func Connect(c Client, timeout time.Duration, logger *zap.Logger) error {
	if c.IsConnected() {
		return nil
	}
	if err := wait(c.Connect(), timeout); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	logger.Info("mqtt connected to broker")
	return nil
}

// wait blocks on tok and folds timeouts and token errors into proto.ErrLink.
func wait(tok pahomqtt.Token, timeout time.Duration) error {
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("%w: mqtt operation timed out after %s", proto.ErrLink, timeout)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrLink, err)
	}
	return nil
}

// FrameTopic is where frames for one link setup travel. Nodes only hear
// each other when channel and data pipe address both match.
func FrameTopic(prefix string, link proto.LinkConfig) string {
	return fmt.Sprintf("%s/ch%d/%s", prefix, link.Channel, link.TxAddress)
}

// SummaryTopic is where the receiver's display publishes.
func SummaryTopic(prefix string) string { return prefix + "/summary" }
