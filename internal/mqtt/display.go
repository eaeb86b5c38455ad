package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

// Publisher is the part of pahomqtt.Client the display needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

var _ transport.DisplayOutput = (*Display)(nil)

// SummaryMessage is the JSON body published once per receive window.
type SummaryMessage struct {
	NoData        bool      `json:"no_data"`
	Mean          float64   `json:"mean"`
	StdDev        float64   `json:"std_dev"`
	Count         int       `json:"count"`
	RoundedMean   int32     `json:"rounded_mean"`
	RoundedStdDev int32     `json:"rounded_std_dev"`
	Timestamp     time.Time `json:"timestamp"`
}

// Display publishes window summaries to <prefix>/summary.
type Display struct {
	pub    Publisher
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func NewDisplay(pub Publisher, cfg Config, logger *zap.Logger) *Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Display{
		pub:    pub,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "mqtt-display")),
		now:    time.Now,
	}
}

func (d *Display) Render(stats proto.Statistics) error {
	return d.publish(SummaryMessage{
		Mean:          stats.Mean,
		StdDev:        stats.StdDev,
		Count:         stats.Count,
		RoundedMean:   stats.RoundedMean(),
		RoundedStdDev: stats.RoundedStdDev(),
		Timestamp:     d.now().UTC(),
	})
}

func (d *Display) RenderNoData() error {
	return d.publish(SummaryMessage{NoData: true, Timestamp: d.now().UTC()})
}

func (d *Display) publish(msg SummaryMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	topic := SummaryTopic(d.cfg.TopicPrefix)
	if err := wait(d.pub.Publish(topic, d.cfg.QoS, d.cfg.Retain, payload), d.cfg.Timeout); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	d.logger.Debug("summary published", zap.String("mqtt_topic", topic), zap.Bool("no_data", msg.NoData))
	return nil
}
