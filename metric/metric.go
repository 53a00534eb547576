// Package metric exports session counters in the Prometheus text format.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

const namespace = "wsnperf"

// Recorder implements throughput.Observer on top of a set of Prometheus
// collectors.
type Recorder struct {
	bytes      *prometheus.CounterVec
	datagrams  prometheus.Counter
	replies    prometheus.Counter
	malformed  prometheus.Counter
	dropped    prometheus.Counter
	sessions   *prometheus.CounterVec
	throughput *prometheus.GaugeVec
}

var _ throughput.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "received_bytes_total",
			Help:      "Payload bytes received by the throughput sink.",
		}, []string{"protocol"}),
		datagrams: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagrams_total",
			Help:      "Datagrams accepted from the session peer.",
		}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Ping-pong acknowledgements sent.",
		}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_total",
			Help:      "Datagrams too short to carry a sequence number.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_total",
			Help:      "Datagrams from hosts other than the session peer.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Completed measurement sessions.",
		}, []string{"protocol", "reason"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_throughput_kibps",
			Help:      "Throughput of the last completed session in kib/s.",
		}, []string{"protocol"}),
	}
	for _, c := range []prometheus.Collector{
		r.bytes, r.datagrams, r.replies, r.malformed, r.dropped, r.sessions, r.throughput,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) Received(protocol wsnperf.Protocol, n int) {
	r.bytes.WithLabelValues(protocol.String()).Add(float64(n))
	if protocol == wsnperf.UDP {
		r.datagrams.Inc()
	}
}

func (r *Recorder) Replied()   { r.replies.Inc() }
func (r *Recorder) Malformed() { r.malformed.Inc() }
func (r *Recorder) Dropped()   { r.dropped.Inc() }

func (r *Recorder) Completed(res throughput.Result) {
	r.sessions.WithLabelValues(res.Protocol.String(), res.StopReason.String()).Inc()
	r.throughput.WithLabelValues(res.Protocol.String()).Set(res.Throughput)
}
