package transport

import (
	"time"

	proto "github.com/ystepanoff/rssilink/protocol"
)

// SignalSource yields one connectivity-quality reading per call, or
// proto.DisconnectedRSSI when there is nothing to measure.
type SignalSource interface {
	Read() int32
}

// DisplayOutput shows a receiver summary.
type DisplayOutput interface {
	Render(stats proto.Statistics) error
	RenderNoData() error
}

// TriggerInput is the (externally debounced) start button.
type TriggerInput interface {
	IsAsserted() bool
}

// Indicator is the activity LED. Optional.
type Indicator interface {
	On()
	Off()
	Toggle()
}

// Clock is the monotonic time base the sessions sleep on.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is backed by time.Now, which carries a monotonic reading.
var SystemClock Clock = systemClock{}

type nopIndicator struct{}

func (nopIndicator) On()     {}
func (nopIndicator) Off()    {}
func (nopIndicator) Toggle() {}
