package mqtt

import "time"

// Config holds broker settings shared by the MQTT link and display.
type Config struct {
	BrokerURL   string        `mapstructure:"broker_url"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"` //nolint:gosec // G101: config field name, not a credential
	ClientID    string        `mapstructure:"client_id"`
	TopicPrefix string        `mapstructure:"topic_prefix"`
	QoS         byte          `mapstructure:"qos"`
	Retain      bool          `mapstructure:"retain"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns defaults with no broker configured.
func DefaultConfig() Config {
	return Config{
		BrokerURL:   "",
		ClientID:    "rssilink",
		TopicPrefix: "rssilink",
		QoS:         1,
		Retain:      false,
		Timeout:     10 * time.Second,
	}
}
