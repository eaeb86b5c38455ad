package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ystepanoff/rssilink/driver/stub"
	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

type stepClock struct {
	now    time.Time
	sleeps int
	onTick func()
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.sleeps++
	if c.onTick != nil {
		c.onTick()
	}
}

type constSource int32

func (s constSource) Read() int32 { return int32(s) }

func TestManual(t *testing.T) {
	clk := &stepClock{now: time.Unix(0, 0)}
	m := NewManual(clk, 100*time.Millisecond)
	assert.False(t, m.IsAsserted())

	m.Fire()
	m.Fire()
	assert.True(t, m.IsAsserted())
	assert.False(t, m.IsAsserted(), "one poll consumes the press")

	m.Fire()
	clk.Sleep(100 * time.Millisecond)
	assert.True(t, m.IsAsserted(), "press one poll interval ago is still seen")
}

func TestManual_StalePressIgnored(t *testing.T) {
	clk := &stepClock{now: time.Unix(0, 0)}
	m := NewManual(clk, 100*time.Millisecond)

	m.Fire()
	clk.Sleep(150 * time.Millisecond)
	assert.False(t, m.IsAsserted())

	clk.Sleep(10 * time.Millisecond)
	assert.False(t, m.IsAsserted(), "expired press is dropped, not kept for later")
}

func TestManual_ConcurrentFire(t *testing.T) {
	m := NewManual(nil, time.Second)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Fire()
		}()
	}
	wg.Wait()
	assert.True(t, m.IsAsserted())
	assert.False(t, m.IsAsserted())
}

// runWithPresses drives a transmitter on a stub radio for 20s of fake time.
// press is called after every clock sleep with the sleep count.
func runWithPresses(t *testing.T, press func(m *Manual, sleeps int)) int {
	t.Helper()
	cfg := transport.DefaultTransmitterConfig()
	clk := &stepClock{now: time.Unix(1700000000, 0)}
	m := NewManual(clk, cfg.TriggerPoll)
	radio := stub.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	start := clk.now
	clk.onTick = func() {
		press(m, clk.sleeps)
		if clk.now.Sub(start) >= 20*time.Second {
			cancel()
		}
	}

	tx := transport.NewTransmitterWithDriver(cfg, radio, constSource(-45), m, transport.WithClock(clk))
	require.NoError(t, tx.Initialise())

	m.Fire() // pressed while idle
	assert.ErrorIs(t, tx.Run(ctx), context.Canceled)
	return len(radio.GetTxLog())
}

func TestManual_PressDuringMeasuringIgnored(t *testing.T) {
	frames := runWithPresses(t, func(m *Manual, sleeps int) {
		if sleeps == 3 { // third sample interval, mid-Measuring
			m.Fire()
		}
	})
	assert.Equal(t, proto.DefaultSampleCount+2, frames)
}

func TestManual_PressDuringCooldownIgnored(t *testing.T) {
	// Sleeps 1-10 are sample intervals, 11 the summary gap, 12 the cooldown.
	frames := runWithPresses(t, func(m *Manual, sleeps int) {
		if sleeps == 11 {
			m.Fire()
		}
	})
	assert.Equal(t, proto.DefaultSampleCount+2, frames)
}

func TestManual_LaterIdlePressStartsNewCycle(t *testing.T) {
	frames := runWithPresses(t, func(m *Manual, sleeps int) {
		if sleeps == 30 { // well inside Idle polling after the first cycle
			m.Fire()
		}
	})
	assert.Equal(t, 2*(proto.DefaultSampleCount+2), frames)
}

func TestInterval(t *testing.T) {
	clk := &stepClock{now: time.Unix(0, 0)}
	it := NewInterval(clk, 10*time.Second)

	assert.True(t, it.IsAsserted(), "first poll fires immediately")
	assert.False(t, it.IsAsserted())

	clk.Sleep(9 * time.Second)
	assert.False(t, it.IsAsserted())

	clk.Sleep(time.Second)
	assert.True(t, it.IsAsserted())

	// A late poll restarts the period from when it fired.
	clk.Sleep(25 * time.Second)
	assert.True(t, it.IsAsserted())
	clk.Sleep(9 * time.Second)
	assert.False(t, it.IsAsserted())
}
