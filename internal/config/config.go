// Package config loads node configuration through Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ystepanoff/rssilink/internal/mqtt"
	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

// EnvPrefix is prepended to environment overrides, e.g. RSSILINK_LINK_CHANNEL.
const EnvPrefix = "RSSILINK"

// Config is the whole file. Each node reads the sections it needs.
type Config struct {
	Link        LinkConfig        `mapstructure:"link"`
	Transmitter TransmitterConfig `mapstructure:"transmitter"`
	Receiver    ReceiverConfig    `mapstructure:"receiver"`
	Source      SourceConfig      `mapstructure:"source"`
	Trigger     TriggerConfig     `mapstructure:"trigger"`
	Display     DisplayConfig     `mapstructure:"display"`
	MQTT        mqtt.Config       `mapstructure:"mqtt"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// LinkConfig mirrors proto.LinkConfig in a file-friendly shape.
type LinkConfig struct {
	Driver    string `mapstructure:"driver"` // "stub" or "mqtt"
	Channel   uint8  `mapstructure:"channel"`
	TxAddress string `mapstructure:"tx_address"`
	RxAddress string `mapstructure:"rx_address"`
	DataRate  uint8  `mapstructure:"data_rate"`
	Power     uint8  `mapstructure:"power"`
}

type TransmitterConfig struct {
	SampleCount    int           `mapstructure:"sample_count"`
	SampleInterval time.Duration `mapstructure:"sample_interval"`
	SummaryGap     time.Duration `mapstructure:"summary_gap"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	TriggerPoll    time.Duration `mapstructure:"trigger_poll"`
}

type ReceiverConfig struct {
	Window       time.Duration `mapstructure:"window"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type SourceConfig struct {
	Kind      string  `mapstructure:"kind"` // "wireless" or "sequence"
	Interface string  `mapstructure:"interface"`
	ProcRoot  string  `mapstructure:"proc_root"`
	Values    []int32 `mapstructure:"values"`
}

type TriggerConfig struct {
	Kind     string        `mapstructure:"kind"` // "interval" or "manual"
	Interval time.Duration `mapstructure:"interval"`
}

type DisplayConfig struct {
	Kind string `mapstructure:"kind"` // "console" or "mqtt"
}

type MetricsConfig struct {
	Listen string `mapstructure:"listen"` // empty disables the endpoint
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v so that unset keys still
// unmarshal and env overrides have a key to bind to.
func SetDefaults(v *viper.Viper) {
	def := proto.DefaultLinkConfig()
	v.SetDefault("link.driver", "stub")
	v.SetDefault("link.channel", def.Channel)
	v.SetDefault("link.tx_address", def.TxAddress.String())
	v.SetDefault("link.rx_address", def.RxAddress.String())
	v.SetDefault("link.data_rate", def.DataRate)
	v.SetDefault("link.power", def.Power)

	v.SetDefault("transmitter.sample_count", proto.DefaultSampleCount)
	v.SetDefault("transmitter.sample_interval", proto.DefaultSampleInterval)
	v.SetDefault("transmitter.summary_gap", proto.DefaultSummaryGap)
	v.SetDefault("transmitter.cooldown", proto.DefaultCooldown)
	v.SetDefault("transmitter.trigger_poll", proto.DefaultTriggerPoll)

	v.SetDefault("receiver.window", proto.DefaultWindow)
	v.SetDefault("receiver.poll_interval", proto.DefaultPollInterval)

	v.SetDefault("source.kind", "wireless")
	v.SetDefault("source.interface", "wlan0")
	v.SetDefault("source.proc_root", "/proc")

	v.SetDefault("trigger.kind", "manual")
	v.SetDefault("trigger.interval", 10*time.Second)

	v.SetDefault("display.kind", "console")

	m := mqtt.DefaultConfig()
	v.SetDefault("mqtt.broker_url", m.BrokerURL)
	v.SetDefault("mqtt.client_id", m.ClientID)
	v.SetDefault("mqtt.topic_prefix", m.TopicPrefix)
	v.SetDefault("mqtt.qos", m.QoS)
	v.SetDefault("mqtt.retain", m.Retain)
	v.SetDefault("mqtt.timeout", m.Timeout)
	v.SetDefault("mqtt.username", m.Username)
	v.SetDefault("mqtt.password", m.Password)

	v.SetDefault("metrics.listen", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// New returns a Viper instance with defaults and env overrides wired up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) on top of the defaults and validates the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProtoLink converts the file section into the radio setup both nodes share.
func (c *Config) ProtoLink() (proto.LinkConfig, error) {
	tx, err := proto.ParseAddress(c.Link.TxAddress)
	if err != nil {
		return proto.LinkConfig{}, fmt.Errorf("link.tx_address: %w", err)
	}
	rx, err := proto.ParseAddress(c.Link.RxAddress)
	if err != nil {
		return proto.LinkConfig{}, fmt.Errorf("link.rx_address: %w", err)
	}
	lc := proto.LinkConfig{
		Channel:   c.Link.Channel,
		TxAddress: tx,
		RxAddress: rx,
		DataRate:  c.Link.DataRate,
		Power:     c.Link.Power,
	}
	return lc, lc.Validate()
}

func (c *Config) TransmitterSession() (transport.TransmitterConfig, error) {
	link, err := c.ProtoLink()
	if err != nil {
		return transport.TransmitterConfig{}, err
	}
	tc := transport.TransmitterConfig{
		Link:           link,
		SampleCount:    c.Transmitter.SampleCount,
		SampleInterval: c.Transmitter.SampleInterval,
		SummaryGap:     c.Transmitter.SummaryGap,
		Cooldown:       c.Transmitter.Cooldown,
		TriggerPoll:    c.Transmitter.TriggerPoll,
	}
	return tc, tc.Validate()
}

func (c *Config) ReceiverSession() (transport.ReceiverConfig, error) {
	link, err := c.ProtoLink()
	if err != nil {
		return transport.ReceiverConfig{}, err
	}
	rc := transport.ReceiverConfig{
		Link:         link,
		Window:       c.Receiver.Window,
		PollInterval: c.Receiver.PollInterval,
	}
	return rc, rc.Validate()
}

// Validate checks everything both roles depend on.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.TransmitterSession(); err != nil {
		errs = append(errs, fmt.Errorf("transmitter: %w", err))
	}
	if _, err := c.ReceiverSession(); err != nil {
		errs = append(errs, fmt.Errorf("receiver: %w", err))
	}
	switch c.Link.Driver {
	case "stub", "mqtt":
	default:
		errs = append(errs, fmt.Errorf("%w: link.driver %q", proto.ErrInvalidConfig, c.Link.Driver))
	}
	switch c.Source.Kind {
	case "wireless", "sequence":
	default:
		errs = append(errs, fmt.Errorf("%w: source.kind %q", proto.ErrInvalidConfig, c.Source.Kind))
	}
	switch c.Trigger.Kind {
	case "manual":
	case "interval":
		if c.Trigger.Interval <= 0 {
			errs = append(errs, fmt.Errorf("%w: trigger.interval must be positive", proto.ErrInvalidConfig))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: trigger.kind %q", proto.ErrInvalidConfig, c.Trigger.Kind))
	}
	switch c.Display.Kind {
	case "console", "mqtt":
	default:
		errs = append(errs, fmt.Errorf("%w: display.kind %q", proto.ErrInvalidConfig, c.Display.Kind))
	}
	if (c.Link.Driver == "mqtt" || c.Display.Kind == "mqtt") && c.MQTT.BrokerURL == "" {
		errs = append(errs, fmt.Errorf("%w: mqtt.broker_url is required by the mqtt driver/display", proto.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
