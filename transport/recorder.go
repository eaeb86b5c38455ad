package transport

import proto "github.com/ystepanoff/rssilink/protocol"

// Recorder receives counters from the sessions. The prometheus-backed
// implementation lives in internal/metrics; the default discards everything.
type Recorder interface {
	FrameSent()
	SendFailed()
	FrameReceived()
	FrameMalformed()
	ReceiveFailed()
	CycleCompleted(role string, stats proto.Statistics)
	NoData()
}

type nopRecorder struct{}

func (nopRecorder) FrameSent()                              {}
func (nopRecorder) SendFailed()                             {}
func (nopRecorder) FrameReceived()                          {}
func (nopRecorder) FrameMalformed()                         {}
func (nopRecorder) ReceiveFailed()                          {}
func (nopRecorder) CycleCompleted(string, proto.Statistics) {}
func (nopRecorder) NoData()                                 {}

const (
	RoleTransmitter = "transmitter"
	RoleReceiver    = "receiver"
)
