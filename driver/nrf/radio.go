//go:build tinygo || baremetal

package nrf

import (
	"encoding/binary"

	proto "github.com/ystepanoff/rssilink/protocol"

	"device/nrf"
)

// StartHFCLK starts the high-frequency clock required by the radio.
func StartHFCLK() {
	nrf.CLOCK.EVENTS_HFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_HFCLKSTART.Set(1)
	for nrf.CLOCK.EVENTS_HFCLKSTARTED.Get() == 0 {
	}
}

func mode(dataRate uint8) uint32 {
	if dataRate == 1 {
		return nrf.RADIO_MODE_MODE_Nrf_1Mbit
	}
	return nrf.RADIO_MODE_MODE_Nrf_2Mbit
}

// txPower maps the four nRF24-style levels onto the nRF52 register values.
func txPower(level uint8) uint32 {
	switch level {
	case 0:
		return nrf.RADIO_TXPOWER_TXPOWER_Neg20dBm
	case 1:
		return nrf.RADIO_TXPOWER_TXPOWER_Neg12dBm
	case 2:
		return nrf.RADIO_TXPOWER_TXPOWER_Neg4dBm
	default:
		return nrf.RADIO_TXPOWER_TXPOWER_0dBm
	}
}

// ConfigureRadio sets up mode, power and addressing for a fixed 4-byte payload.
// Logical address 0 is the data pipe (TxAddress), logical address 1 the reverse pipe.
func ConfigureRadio(cfg proto.LinkConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	nrf.RADIO.POWER.Set(1)
	nrf.RADIO.MODE.Set(mode(cfg.DataRate))
	nrf.RADIO.TXPOWER.Set(txPower(cfg.Power))
	nrf.RADIO.FREQUENCY.Set(uint32(cfg.Channel))

	nrf.RADIO.BASE0.Set(binary.LittleEndian.Uint32(cfg.TxAddress[1:]))
	nrf.RADIO.BASE1.Set(binary.LittleEndian.Uint32(cfg.RxAddress[1:]))
	nrf.RADIO.PREFIX0.Set(uint32(cfg.TxAddress[0]) | uint32(cfg.RxAddress[0])<<8)
	nrf.RADIO.TXADDRESS.Set(0)
	nrf.RADIO.RXADDRESSES.Set(1)

	// No length field: every packet is exactly one frame.
	nrf.RADIO.PCNF0.Set(
		(0 << nrf.RADIO_PCNF0_LFLEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S0LEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S1LEN_Pos))

	nrf.RADIO.PCNF1.Set(
		(proto.FrameSize << nrf.RADIO_PCNF1_MAXLEN_Pos) |
			(proto.FrameSize << nrf.RADIO_PCNF1_STATLEN_Pos) |
			(4 << nrf.RADIO_PCNF1_BALEN_Pos) |
			(nrf.RADIO_PCNF1_ENDIAN_Little << nrf.RADIO_PCNF1_ENDIAN_Pos))

	// 2-byte CRC, same polynomial as the nRF24 family
	nrf.RADIO.CRCCNF.Set(2)
	nrf.RADIO.CRCINIT.Set(0xFFFF)
	nrf.RADIO.CRCPOLY.Set(0x11021)

	return nil
}
