//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package rssilink

import (
	"github.com/ystepanoff/rssilink/driver/stub"
	"github.com/ystepanoff/rssilink/transport"
)

// NewTransmitter returns a transmitter on an unpaired stub radio; frames
// are kept in the stub's transmit log.
func NewTransmitter(cfg TransmitterConfig, src transport.SignalSource, trig transport.TriggerInput, opts ...Option) *Transmitter {
	return transport.NewTransmitterWithDriver(cfg, stub.New(), src, trig, opts...)
}

func NewReceiver(cfg ReceiverConfig, display transport.DisplayOutput, opts ...Option) *Receiver {
	return transport.NewReceiverWithDriver(cfg, stub.New(), display, opts...)
}

// NewSimulatedPair wires a transmitter and a receiver to each other
// through paired stub radios in the same process.
func NewSimulatedPair(
	txCfg TransmitterConfig, src transport.SignalSource, trig transport.TriggerInput,
	rxCfg ReceiverConfig, display transport.DisplayOutput,
	opts ...Option,
) (*Transmitter, *Receiver) {
	a, b := stub.New(), stub.New()
	stub.Pair(a, b)
	return transport.NewTransmitterWithDriver(txCfg, a, src, trig, opts...),
		transport.NewReceiverWithDriver(rxCfg, b, display, opts...)
}
