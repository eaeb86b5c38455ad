package transport

import (
	"time"

	proto "github.com/ystepanoff/rssilink/protocol"
)

// ReadFunc produces at most one sample per call. ok=false means the poll
// yielded nothing usable and the collector just waits for the next tick.
type ReadFunc func() (value int32, ok bool)

// Collector runs fixed-cadence polling loops on a Clock. It blocks the caller
// for the whole run; there are no background goroutines.
type Collector struct {
	clock Clock
}

func NewCollector(clock Clock) *Collector {
	if clock == nil {
		clock = SystemClock
	}
	return &Collector{clock: clock}
}

// Collect polls read every interval until duration has elapsed since the call.
// The deadline is only checked between reads and nothing cancels a running
// window.
func (c *Collector) Collect(duration, interval time.Duration, read ReadFunc) *proto.SampleWindow {
	capacity := 0
	if interval > 0 {
		capacity = int(duration / interval)
	}
	window := proto.NewSampleWindow(capacity)

	start := c.clock.Now()
	for c.clock.Now().Sub(start) < duration {
		if v, ok := read(); ok {
			window.Append(v)
		}
		c.clock.Sleep(interval)
	}
	return window
}

// CollectN performs exactly count reads. after runs on every appended sample
// before the inter-sample wait, which is how the transmitter sends each
// reading before it starts waiting for the next one.
func (c *Collector) CollectN(count int, interval time.Duration, read ReadFunc, after func(int, int32)) *proto.SampleWindow {
	window := proto.NewSampleWindow(count)
	for i := 0; i < count; i++ {
		if v, ok := read(); ok {
			window.Append(v)
			if after != nil {
				after(i, v)
			}
		}
		c.clock.Sleep(interval)
	}
	return window
}
