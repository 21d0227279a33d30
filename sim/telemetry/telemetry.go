// Package telemetry exports dispatch progress as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lemove/lemove/sim"
)

// Recorder holds the dispatch metrics and implements sim.Observer.
type Recorder struct {
	Started        prometheus.Counter
	Settled        prometheus.Counter
	RecordsSent    prometheus.Counter
	Transitions    *prometheus.CounterVec
	SettleTicks    prometheus.Histogram
	PendingRecords prometheus.Gauge
}

var _ sim.Observer = (*Recorder)(nil)

// New creates the metrics and registers them on reg.
// Use a fresh prometheus.NewRegistry() per Recorder to avoid duplicate registration.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		Started: factory.NewCounter(prometheus.CounterOpts{
			Name: "lemove_dispatch_started_total",
			Help: "Total number of dispatch requests that sent at least one record or extended a running dispatch",
		}),
		Settled: factory.NewCounter(prometheus.CounterOpts{
			Name: "lemove_dispatch_settled_total",
			Help: "Total number of dispatches that ended with no record left pending",
		}),
		RecordsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "lemove_records_sent_total",
			Help: "Total number of records moved from not_contacted to sent",
		}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lemove_record_transitions_total",
			Help: "Total number of record status changes by source and target status",
		}, []string{"from", "to"}),
		SettleTicks: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lemove_settle_ticks",
			Help:    "Number of ticks a dispatch ran before settling",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
		PendingRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lemove_records_pending",
			Help: "Number of records currently sent and awaiting confirmation",
		}),
	}
}

// DispatchStarted counts a dispatch and the records it sent. The pending
// gauge is reset to the records already awaiting; the transitions that
// follow add the newly sent ones.
func (r *Recorder) DispatchStarted(_ int64, sent, awaiting int) {
	r.Started.Inc()
	r.RecordsSent.Add(float64(sent))
	r.PendingRecords.Set(float64(awaiting))
}

// Transitioned counts one status change and tracks the awaiting-confirmation gauge.
func (r *Recorder) Transitioned(_ int64, t sim.Transition) {
	r.Transitions.WithLabelValues(string(t.From), string(t.To)).Inc()
	if t.To == sim.StatusSent {
		r.PendingRecords.Inc()
	}
	if t.From == sim.StatusSent {
		r.PendingRecords.Dec()
	}
}

// DispatchSettled counts a settled dispatch and observes its tick count.
func (r *Recorder) DispatchSettled(_ int64, ticks int) {
	r.Settled.Inc()
	r.SettleTicks.Observe(float64(ticks))
}
