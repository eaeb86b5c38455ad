//go:build tinygo || baremetal

package nrf

import (
	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"

	"device/nrf"
)

var _ transport.SignalSource = (*Driver)(nil)

// Read samples the received signal strength on the configured channel.
// The radio must be listening; otherwise proto.DisconnectedRSSI is returned.
func (d *Driver) Read() int32 {
	if !d.listening {
		return proto.DisconnectedRSSI
	}
	nrf.RADIO.EVENTS_RSSIEND.Set(0)
	nrf.RADIO.TASKS_RSSISTART.Set(1)
	if !waitEvent(&nrf.RADIO.EVENTS_RSSIEND) {
		return proto.DisconnectedRSSI
	}
	// RSSISAMPLE holds the magnitude; the level is its negative in dBm.
	return -int32(nrf.RADIO.RSSISAMPLE.Get() & nrf.RADIO_RSSISAMPLE_RSSISAMPLE_Msk)
}
