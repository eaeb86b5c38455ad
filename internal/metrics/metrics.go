// Package metrics exports session counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

const namespace = "rssilink"

var _ transport.Recorder = (*Recorder)(nil)

// Recorder implements transport.Recorder on a private registry so several
// nodes can live in one process (the simulate command does that).
type Recorder struct {
	registry *prometheus.Registry

	framesSent      prometheus.Counter
	sendFailures    prometheus.Counter
	framesReceived  prometheus.Counter
	framesMalformed prometheus.Counter
	receiveFailures prometheus.Counter
	noData          prometheus.Counter
	cycles          *prometheus.CounterVec
	mean            *prometheus.GaugeVec
	stdDev          *prometheus.GaugeVec
	samples         *prometheus.HistogramVec
}

// New registers every collector, labelled with the node name.
func New(node string) *Recorder {
	labels := prometheus.Labels{"node": node}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	r := &Recorder{
		registry:        prometheus.NewRegistry(),
		framesSent:      counter("frames_sent_total", "Frames handed to the radio successfully."),
		sendFailures:    counter("send_failures_total", "Frames the radio refused to send."),
		framesReceived:  counter("frames_received_total", "Well-formed frames decoded by the receiver."),
		framesMalformed: counter("frames_malformed_total", "Frames dropped for having the wrong length."),
		receiveFailures: counter("receive_failures_total", "Radio read errors other than an empty queue."),
		noData:          counter("windows_empty_total", "Receive windows that ended without a single frame."),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cycles_total",
			Help:        "Completed measurement or receive cycles.",
			ConstLabels: labels,
		}, []string{"role"}),
		mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "window_mean_dbm",
			Help:        "Mean of the last completed window.",
			ConstLabels: labels,
		}, []string{"role"}),
		stdDev: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "window_stddev_db",
			Help:        "Population standard deviation of the last completed window.",
			ConstLabels: labels,
		}, []string{"role"}),
		samples: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "window_samples",
			Help:        "Samples per completed window.",
			ConstLabels: labels,
			Buckets:     []float64{1, 5, 10, 20, 50},
		}, []string{"role"}),
	}

	r.registry.MustRegister(
		r.framesSent, r.sendFailures,
		r.framesReceived, r.framesMalformed, r.receiveFailures, r.noData,
		r.cycles, r.mean, r.stdDev, r.samples,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) FrameSent()      { r.framesSent.Inc() }
func (r *Recorder) SendFailed()     { r.sendFailures.Inc() }
func (r *Recorder) FrameReceived()  { r.framesReceived.Inc() }
func (r *Recorder) FrameMalformed() { r.framesMalformed.Inc() }
func (r *Recorder) ReceiveFailed()  { r.receiveFailures.Inc() }
func (r *Recorder) NoData()         { r.noData.Inc() }

func (r *Recorder) CycleCompleted(role string, stats proto.Statistics) {
	r.cycles.WithLabelValues(role).Inc()
	r.mean.WithLabelValues(role).Set(stats.Mean)
	r.stdDev.WithLabelValues(role).Set(stats.StdDev)
	r.samples.WithLabelValues(role).Observe(float64(stats.Count))
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry on /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
