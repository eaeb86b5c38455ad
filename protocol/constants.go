package protocol

import "time"

// Generic radio & protocol constants (platform independent). All higher layers should depend on this file.
const (
	// Frame sizing
	// Layout:
	//   Sample (4 bytes, int32 little-endian two's complement)
	// There is no header, type or checksum; the radio's static payload length and CRC cover framing.
	FrameSize = 4

	// RF defaults (can be overridden per deployment, both nodes must agree)
	DefaultChannel   = 46
	MaxChannel       = 125
	DefaultDataRate  = 2 // Mbps
	DefaultPower     = 3 // highest of the four levels
	AddressSize      = 5
	DisconnectedRSSI = -100

	// Transmitter timing
	DefaultSampleCount    = 10
	DefaultSampleInterval = 500 * time.Millisecond
	DefaultSummaryGap     = 100 * time.Millisecond
	DefaultCooldown       = 1 * time.Second
	DefaultTriggerPoll    = 100 * time.Millisecond

	// Receiver timing
	DefaultWindow       = 5000 * time.Millisecond
	DefaultPollInterval = 100 * time.Millisecond
)

var (
	// DefaultTxAddress is the data pipe: the transmitter writes to it, the receiver listens on it.
	DefaultTxAddress = Address{0xE1, 0xF0, 0xF0, 0xF0, 0xF0}
	// DefaultRxAddress is the reverse pipe (receiver to transmitter); opened but unused by the protocol.
	DefaultRxAddress = Address{0xD2, 0xF0, 0xF0, 0xF0, 0xF0}
)
