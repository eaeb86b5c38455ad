//go:build tinygo || baremetal

package nrf

import (
	"machine"

	"github.com/ystepanoff/rssilink/transport"
)

var (
	_ transport.TriggerInput = (*Button)(nil)
	_ transport.Indicator    = (*LED)(nil)
)

// Button is an active-low push button with the internal pull-up enabled.
// Debouncing is left to the caller's cooldown.
type Button struct {
	pin machine.Pin
}

func NewButton(pin machine.Pin) *Button {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Button{pin: pin}
}

func (b *Button) IsAsserted() bool { return !b.pin.Get() }

// LED drives an on-board LED. Most nRF development kits wire them active low.
type LED struct {
	pin       machine.Pin
	activeLow bool
	lit       bool
}

func NewLED(pin machine.Pin, activeLow bool) *LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l := &LED{pin: pin, activeLow: activeLow}
	l.Off()
	return l
}

func (l *LED) set(on bool) {
	l.lit = on
	l.pin.Set(on != l.activeLow)
}

func (l *LED) On()     { l.set(true) }
func (l *LED) Off()    { l.set(false) }
func (l *LED) Toggle() { l.set(!l.lit) }
