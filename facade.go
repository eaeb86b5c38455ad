// Package rssilink provides a façade over the two-node RSSI telemetry link.
package rssilink

import (
	"github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

// The driver is picked by build tag:
// - constructors_nrf.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing (//go:build !tinygo && !baremetal)

type (
	Address           = protocol.Address
	LinkConfig        = protocol.LinkConfig
	Statistics        = protocol.Statistics
	Transmitter       = transport.Transmitter
	TransmitterConfig = transport.TransmitterConfig
	Receiver          = transport.Receiver
	ReceiverConfig    = transport.ReceiverConfig
	Report            = transport.Report
	Summary           = transport.Summary
	Option            = transport.Option
)

// Error constants exposed in the public API
var (
	ErrMalformedFrame = protocol.ErrMalformedFrame
	ErrLink           = protocol.ErrLink
	ErrNoData         = protocol.ErrNoData
	ErrInvalidChannel = protocol.ErrInvalidChannel
	ErrInvalidAddress = protocol.ErrInvalidAddress
	ErrInvalidConfig  = protocol.ErrInvalidConfig
)

// Constants exposed in the public API
const (
	DefaultChannel   = protocol.DefaultChannel
	DisconnectedRSSI = protocol.DisconnectedRSSI
)

var (
	DefaultTransmitterConfig = transport.DefaultTransmitterConfig
	DefaultReceiverConfig    = transport.DefaultReceiverConfig

	WithLogger    = transport.WithLogger
	WithClock     = transport.WithClock
	WithRecorder  = transport.WithRecorder
	WithIndicator = transport.WithIndicator
)
