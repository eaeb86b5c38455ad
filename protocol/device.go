package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address is a 5-byte pipe address.
type Address [AddressSize]byte

// ParseAddress accepts hex with or without separators, e.g. "E1F0F0F0F0" or "e1:f0:f0:f0:f0".
func ParseAddress(s string) (Address, error) {
	var a Address
	clean := strings.NewReplacer(":", "", "-", "", " ", "", "0x", "").Replace(strings.ToLower(s))
	b, err := hex.DecodeString(clean)
	if err != nil || len(b) != AddressSize {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string { return strings.ToUpper(hex.EncodeToString(a[:])) }

// LinkConfig is the one-time radio setup. It is not negotiated: both nodes
// must be deployed with identical values or nothing gets through.
type LinkConfig struct {
	Channel   uint8
	TxAddress Address
	RxAddress Address
	DataRate  uint8 // Mbps, 1 or 2
	Power     uint8 // 0 (lowest) .. 3 (highest)
}

func DefaultLinkConfig() LinkConfig {
	return LinkConfig{
		Channel:   DefaultChannel,
		TxAddress: DefaultTxAddress,
		RxAddress: DefaultRxAddress,
		DataRate:  DefaultDataRate,
		Power:     DefaultPower,
	}
}

func (c LinkConfig) Validate() error {
	if c.Channel > MaxChannel {
		return ErrInvalidChannel
	}
	if c.DataRate != 1 && c.DataRate != 2 {
		return fmt.Errorf("%w: data rate %d Mbps", ErrInvalidConfig, c.DataRate)
	}
	if c.Power > 3 {
		return fmt.Errorf("%w: power level %d", ErrInvalidConfig, c.Power)
	}
	if c.TxAddress == c.RxAddress {
		return fmt.Errorf("%w: tx and rx addresses are identical", ErrInvalidAddress)
	}
	return nil
}

// FrequencyMHz is the carrier for the configured channel (1 MHz steps from 2400 MHz).
func (c LinkConfig) FrequencyMHz() int { return 2400 + int(c.Channel) }
