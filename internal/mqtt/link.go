package mqtt

import (
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

// inboxSize bounds frames held between polls; the oldest are dropped first.
const inboxSize = 64

var _ transport.RadioDriver = (*Link)(nil)

// Link is a RadioDriver that publishes each frame as a 4-byte MQTT message
// and queues whatever arrives on the same topic.
type Link struct {
	client Client
	cfg    Config
	logger *zap.Logger

	mu         sync.Mutex
	topic      string
	configured bool
	inbox      [][]byte
	dropped    uint64
}

func NewLink(client Client, cfg Config, logger *zap.Logger) *Link {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Link{client: client, cfg: cfg, logger: logger.With(zap.String("component", "mqtt-link"))}
}

func (l *Link) Configure(link proto.LinkConfig) error {
	if err := link.Validate(); err != nil {
		return err
	}
	if err := Connect(l.client, l.cfg.Timeout, l.logger); err != nil {
		return err
	}

	topic := FrameTopic(l.cfg.TopicPrefix, link)
	if err := wait(l.client.Subscribe(topic, l.cfg.QoS, l.onMessage), l.cfg.Timeout); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	l.mu.Lock()
	l.topic = topic
	l.configured = true
	l.mu.Unlock()

	l.logger.Info("mqtt link ready", zap.String("topic", topic), zap.Uint8("qos", l.cfg.QoS))
	return nil
}

func (l *Link) onMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	payload := append([]byte(nil), msg.Payload()...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.inbox) == inboxSize {
		l.inbox = l.inbox[1:]
		l.dropped++
	}
	l.inbox = append(l.inbox, payload)
}

func (l *Link) Tx(data []byte) error {
	l.mu.Lock()
	topic, ok := l.topic, l.configured
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: link not configured", proto.ErrLink)
	}

	frame := append([]byte(nil), data...)
	if err := wait(l.client.Publish(topic, l.cfg.QoS, false, frame), l.cfg.Timeout); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (l *Link) Any() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inbox) > 0
}

func (l *Link) Rx() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.inbox) == 0 {
		return nil, proto.ErrNoData
	}
	out := l.inbox[0]
	l.inbox = l.inbox[1:]
	return out, nil
}

// Dropped reports frames discarded because nobody polled in time.
func (l *Link) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close unsubscribes. The client itself is left to its owner.
func (l *Link) Close() error {
	l.mu.Lock()
	topic, ok := l.topic, l.configured
	l.configured = false
	l.mu.Unlock()
	if !ok || !l.client.IsConnected() {
		return nil
	}
	if err := wait(l.client.Unsubscribe(topic), l.cfg.Timeout); err != nil {
		l.logger.Warn("mqtt unsubscribe failed", zap.String("topic", topic), zap.Error(err))
		return err
	}
	return nil
}
