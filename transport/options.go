package transport

import "go.uber.org/zap"

// Option customises a Transmitter or Receiver.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	clock     Clock
	recorder  Recorder
	indicator Indicator
}

func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		clock:     SystemClock,
		recorder:  nopRecorder{},
		indicator: nopIndicator{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func WithIndicator(i Indicator) Option {
	return func(o *options) {
		if i != nil {
			o.indicator = i
		}
	}
}
