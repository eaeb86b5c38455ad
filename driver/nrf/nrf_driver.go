//go:build tinygo || baremetal

package nrf

import (
	"fmt"
	"time"
	"unsafe"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"

	"device/nrf"
)

// rampTimeout bounds every wait on a radio event; the radio ramps up in ~140µs.
const rampTimeout = 5 * time.Millisecond

// Driver provides a RadioDriver backed by the real NRF peripheral registers.
// Between transmissions the radio sits in RX so Any can report queued frames.
type Driver struct {
	buffer     [proto.FrameSize]byte
	configured bool
	listening  bool
}

var _ transport.RadioDriver = (*Driver)(nil)

func New() *Driver { return &Driver{} }

func (d *Driver) Configure(cfg proto.LinkConfig) error {
	StartHFCLK()
	if err := ConfigureRadio(cfg); err != nil {
		return err
	}
	d.configured = true
	return d.startListening()
}

func waitEvent(reg interface{ Get() uint32 }) bool {
	start := time.Now()
	for reg.Get() == 0 {
		if time.Since(start) > rampTimeout {
			return false
		}
	}
	return true
}

func (d *Driver) disable() {
	nrf.RADIO.TASKS_DISABLE.Set(1)
	for nrf.RADIO.STATE.Get() != nrf.RADIO_STATE_STATE_Disabled {
	}
	d.listening = false
}

func (d *Driver) startListening() error {
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_RXEN.Set(1)
	if !waitEvent(&nrf.RADIO.EVENTS_READY) {
		d.disable()
		return fmt.Errorf("%w: rx ramp-up timed out", proto.ErrLink)
	}
	nrf.RADIO.TASKS_START.Set(1)
	d.listening = true
	return nil
}

func (d *Driver) Tx(data []byte) error {
	if !d.configured {
		return fmt.Errorf("%w: radio not configured", proto.ErrLink)
	}
	if len(data) != proto.FrameSize {
		return fmt.Errorf("%w: %d byte payload", proto.ErrMalformedFrame, len(data))
	}
	d.disable()

	var out [proto.FrameSize]byte
	copy(out[:], data)
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&out[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_TXEN.Set(1)
	if !waitEvent(&nrf.RADIO.EVENTS_READY) {
		d.disable()
		return fmt.Errorf("%w: tx ramp-up timed out", proto.ErrLink)
	}
	nrf.RADIO.TASKS_START.Set(1)
	if !waitEvent(&nrf.RADIO.EVENTS_END) {
		d.disable()
		return fmt.Errorf("%w: tx did not complete", proto.ErrLink)
	}
	d.disable()

	return d.startListening()
}

func (d *Driver) Any() bool {
	return d.listening && nrf.RADIO.EVENTS_END.Get() != 0
}

func (d *Driver) Rx() ([]byte, error) {
	if !d.Any() {
		return nil, proto.ErrNoData
	}
	crcOK := nrf.RADIO.CRCSTATUS.Get() == nrf.RADIO_CRCSTATUS_CRCSTATUS_CRCOk
	out := make([]byte, proto.FrameSize)
	copy(out, d.buffer[:])

	// Re-arm for the next packet before handing this one back.
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_START.Set(1)

	if !crcOK {
		return nil, proto.ErrNoData
	}
	return out, nil
}

func (d *Driver) Close() error {
	d.disable()
	nrf.RADIO.POWER.Set(0)
	d.configured = false
	return nil
}
