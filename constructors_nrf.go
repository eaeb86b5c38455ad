//go:build tinygo || baremetal

// This file is built only for embedded targets (using real radio hardware).
package rssilink

import (
	"github.com/ystepanoff/rssilink/driver/nrf"
	"github.com/ystepanoff/rssilink/transport"
)

// NewTransmitter uses the on-chip radio. A nil src samples RSSI with the
// same radio between transmissions.
func NewTransmitter(cfg TransmitterConfig, src transport.SignalSource, trig transport.TriggerInput, opts ...Option) *Transmitter {
	d := nrf.New()
	if src == nil {
		src = d
	}
	return transport.NewTransmitterWithDriver(cfg, d, src, trig, opts...)
}

func NewReceiver(cfg ReceiverConfig, display transport.DisplayOutput, opts ...Option) *Receiver {
	return transport.NewReceiverWithDriver(cfg, nrf.New(), display, opts...)
}
