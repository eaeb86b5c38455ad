package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
)

// ReceiverConfig holds the listening cadence of the receiving node.
type ReceiverConfig struct {
	Link         proto.LinkConfig
	Window       time.Duration
	PollInterval time.Duration
}

func DefaultReceiverConfig() ReceiverConfig {
	return ReceiverConfig{
		Link:         proto.DefaultLinkConfig(),
		Window:       proto.DefaultWindow,
		PollInterval: proto.DefaultPollInterval,
	}
}

func (c ReceiverConfig) Validate() error {
	if err := c.Link.Validate(); err != nil {
		return err
	}
	if c.Window <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("%w: window and poll interval must be positive", proto.ErrInvalidConfig)
	}
	return nil
}

// Summary is the outcome of one listening window.
type Summary struct {
	Values []int32
	Stats  proto.Statistics
	NoData bool
}

// Receiver encapsulates high-level logic for the displaying node.
// Every decoded frame counts as a sample, including the transmitter's own
// mean/stddev frames, since nothing on the wire tells them apart.
type Receiver struct {
	cfg       ReceiverConfig
	driver    RadioDriver
	display   DisplayOutput
	collector *Collector

	logger    *zap.Logger
	recorder  Recorder
	indicator Indicator

	state State
}

func NewReceiverWithDriver(cfg ReceiverConfig, d RadioDriver, display DisplayOutput, opts ...Option) *Receiver {
	o := buildOptions(opts)
	return &Receiver{
		cfg:       cfg,
		driver:    d,
		display:   display,
		collector: NewCollector(o.clock),
		logger:    o.logger.With(zap.String("role", RoleReceiver)),
		recorder:  o.recorder,
		indicator: o.indicator,
		state:     StateListening,
	}
}

func (r *Receiver) Initialise() error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}
	if err := r.driver.Configure(r.cfg.Link); err != nil {
		return fmt.Errorf("configure radio: %w", err)
	}
	r.logger.Info("radio configured", zap.Uint8("channel", r.cfg.Link.Channel))
	return nil
}

func (r *Receiver) State() State { return r.state }

func (r *Receiver) setState(s State) {
	if r.state == s {
		return
	}
	r.logger.Debug("state change", zap.Stringer("from", r.state), zap.Stringer("to", s))
	r.state = s
}

// ReceiveFrame polls the driver once. Absent, malformed and failed reads all
// return ok=false and are not retried.
func (r *Receiver) ReceiveFrame() (int32, bool) {
	if !r.driver.Any() {
		return 0, false
	}
	data, err := r.driver.Rx()
	if err != nil {
		if !errors.Is(err, proto.ErrNoData) {
			r.recorder.ReceiveFailed()
			r.logger.Warn("receive failed", zap.Error(err))
		}
		return 0, false
	}
	v, err := proto.DecodeFrame(data)
	if err != nil {
		r.recorder.FrameMalformed()
		r.logger.Debug("dropping frame", zap.Int("len", len(data)), zap.Error(err))
		return 0, false
	}
	r.recorder.FrameReceived()
	r.indicator.Toggle()
	r.logger.Debug("frame received", zap.Int32("rssi", v))
	return v, true
}

// Listen runs the Listening state for one window and returns what arrived.
func (r *Receiver) Listen() *proto.SampleWindow {
	r.setState(StateListening)
	return r.collector.Collect(r.cfg.Window, r.cfg.PollInterval, r.ReceiveFrame)
}

// Summarise runs the Summarizing state over the raw received values.
func (r *Receiver) Summarise(window *proto.SampleWindow) Summary {
	r.setState(StateSummarizing)

	if window.Empty() {
		r.recorder.NoData()
		r.logger.Info("no data received", zap.Duration("window", r.cfg.Window))
		if err := r.display.RenderNoData(); err != nil {
			r.logger.Warn("display failed", zap.Error(err))
		}
		return Summary{NoData: true}
	}

	stats := window.Stats()
	r.recorder.CycleCompleted(RoleReceiver, stats)
	r.logger.Info("window summary",
		zap.Int("count", stats.Count),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
	)
	if err := r.display.Render(stats); err != nil {
		r.logger.Warn("display failed", zap.Error(err))
	}
	return Summary{Values: window.Values(), Stats: stats}
}

// RunCycle is one Listening → Summarizing pass; the next window starts empty.
func (r *Receiver) RunCycle() Summary {
	summary := r.Summarise(r.Listen())
	r.setState(StateListening)
	return summary
}

// Run repeats RunCycle until ctx is cancelled. A window in progress is
// always finished first.
func (r *Receiver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.RunCycle()
	}
}

// Close releases the radio.
func (r *Receiver) Close() error { return r.driver.Close() }
