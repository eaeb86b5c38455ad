package transport

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
)

// TransmitterConfig holds the measuring cadence of the transmitting node.
type TransmitterConfig struct {
	Link           proto.LinkConfig
	SampleCount    int
	SampleInterval time.Duration
	SummaryGap     time.Duration
	Cooldown       time.Duration
	TriggerPoll    time.Duration
}

func DefaultTransmitterConfig() TransmitterConfig {
	return TransmitterConfig{
		Link:           proto.DefaultLinkConfig(),
		SampleCount:    proto.DefaultSampleCount,
		SampleInterval: proto.DefaultSampleInterval,
		SummaryGap:     proto.DefaultSummaryGap,
		Cooldown:       proto.DefaultCooldown,
		TriggerPoll:    proto.DefaultTriggerPoll,
	}
}

func (c TransmitterConfig) Validate() error {
	if err := c.Link.Validate(); err != nil {
		return err
	}
	if c.SampleCount <= 0 {
		return fmt.Errorf("%w: sample count must be positive", proto.ErrInvalidConfig)
	}
	if c.SampleInterval < 0 || c.SummaryGap < 0 || c.Cooldown < 0 {
		return fmt.Errorf("%w: negative delay", proto.ErrInvalidConfig)
	}
	if c.TriggerPoll <= 0 {
		return fmt.Errorf("%w: trigger poll interval must be positive", proto.ErrInvalidConfig)
	}
	return nil
}

// Report describes one trigger cycle of the transmitter.
type Report struct {
	Samples []int32
	Stats   proto.Statistics
	Sent    int // frames the driver accepted
	Failed  int // frames the driver rejected
}

// Transmitter encapsulates high-level logic for the measuring node.
// It is not safe for concurrent use; Run owns it for the process lifetime.
type Transmitter struct {
	cfg       TransmitterConfig
	driver    RadioDriver
	source    SignalSource
	trigger   TriggerInput
	collector *Collector

	logger    *zap.Logger
	clock     Clock
	recorder  Recorder
	indicator Indicator

	state State
	seq   uint32
}

func NewTransmitterWithDriver(cfg TransmitterConfig, d RadioDriver, src SignalSource, trig TriggerInput, opts ...Option) *Transmitter {
	o := buildOptions(opts)
	return &Transmitter{
		cfg:       cfg,
		driver:    d,
		source:    src,
		trigger:   trig,
		collector: NewCollector(o.clock),
		logger:    o.logger.With(zap.String("role", RoleTransmitter)),
		clock:     o.clock,
		recorder:  o.recorder,
		indicator: o.indicator,
		state:     StateIdle,
	}
}

// Initialise performs the one-time radio setup.
func (t *Transmitter) Initialise() error {
	if err := t.cfg.Validate(); err != nil {
		return err
	}
	if err := t.driver.Configure(t.cfg.Link); err != nil {
		return fmt.Errorf("configure radio: %w", err)
	}
	t.logger.Info("radio configured",
		zap.Uint8("channel", t.cfg.Link.Channel),
		zap.Stringer("tx_address", t.cfg.Link.TxAddress),
		zap.Stringer("rx_address", t.cfg.Link.RxAddress),
	)
	return nil
}

func (t *Transmitter) State() State { return t.state }

func (t *Transmitter) setState(s State) {
	if t.state == s {
		return
	}
	t.logger.Debug("state change", zap.Stringer("from", t.state), zap.Stringer("to", s))
	t.state = s
}

// SendSample puts one value on the air. The error is returned for the caller
// to count; it never stops a sequence.
func (t *Transmitter) SendSample(v int32) error {
	seq := t.seq
	t.seq++

	frame := proto.EncodeFrame(v)
	if err := t.driver.Tx(frame.Bytes()); err != nil {
		t.recorder.SendFailed()
		t.logger.Warn("send failed", zap.Uint32("seq", seq), zap.Int32("value", v), zap.Error(err))
		return err
	}
	t.recorder.FrameSent()
	t.logger.Debug("frame sent", zap.Uint32("seq", seq), zap.Int32("value", v))
	return nil
}

// Measure runs the Measuring state: SampleCount reads, each sent before the
// wait for the next one.
func (t *Transmitter) Measure(report *Report) *proto.SampleWindow {
	t.setState(StateMeasuring)
	read := func() (int32, bool) { return t.source.Read(), true }
	return t.collector.CollectN(t.cfg.SampleCount, t.cfg.SampleInterval, read, func(i int, v int32) {
		t.logger.Info("sample", zap.Int("index", i), zap.Int32("rssi", v))
		t.tally(report, t.SendSample(v))
	})
}

// Summarise runs the Reporting state: rounded mean, short gap, rounded stddev.
func (t *Transmitter) Summarise(window *proto.SampleWindow, report *Report) {
	t.setState(StateReporting)
	stats := window.Stats()
	report.Stats = stats

	t.tally(report, t.SendSample(stats.RoundedMean()))
	t.clock.Sleep(t.cfg.SummaryGap)
	t.tally(report, t.SendSample(stats.RoundedStdDev()))

	t.logger.Info("summary sent",
		zap.Int32("mean", stats.RoundedMean()),
		zap.Int32("stddev", stats.RoundedStdDev()),
		zap.Int("failed", report.Failed),
	)
}

func (t *Transmitter) tally(report *Report, err error) {
	if err != nil {
		report.Failed++
		return
	}
	report.Sent++
}

// RunCycle drives Measuring → Reporting → Cooldown and returns to Idle.
// Once started it always runs to completion.
func (t *Transmitter) RunCycle() Report {
	var report Report

	t.indicator.On()
	window := t.Measure(&report)
	report.Samples = window.Values()
	t.Summarise(window, &report)
	t.indicator.Off()

	t.recorder.CycleCompleted(RoleTransmitter, report.Stats)

	t.setState(StateCooldown)
	t.clock.Sleep(t.cfg.Cooldown)
	t.setState(StateIdle)
	return report
}

// Run polls the trigger in Idle and runs a cycle whenever it is asserted.
// ctx is only consulted in Idle; it returns ctx.Err() once cancelled.
func (t *Transmitter) Run(ctx context.Context) error {
	t.setState(StateIdle)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.trigger.IsAsserted() {
			t.logger.Info("trigger asserted, measuring",
				zap.Int("samples", t.cfg.SampleCount),
				zap.Duration("interval", t.cfg.SampleInterval),
			)
			t.RunCycle()
			continue
		}
		t.clock.Sleep(t.cfg.TriggerPoll)
	}
}

// Close releases the radio.
func (t *Transmitter) Close() error { return t.driver.Close() }
