// Package metrics exposes prometheus collectors for upstream calls, report
// exports and stats loads.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder bundles the collectors. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	upstream   *prometheus.HistogramVec
	exports    *prometheus.CounterVec
	superseded prometheus.Counter
}

// NewRecorder creates the collectors and registers them on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "modboard",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the moderation API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modboard",
			Name:      "exports_total",
			Help:      "Reports generated, by format and result.",
		}, []string{"format", "outcome"}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "modboard",
			Name:      "stats_loads_superseded_total",
			Help:      "Stats loads discarded because a newer period selection arrived.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.upstream, r.exports, r.superseded)
	}
	return r
}

// ObserveUpstream records one API call
func (r *Recorder) ObserveUpstream(endpoint string, started time.Time, err error) {
	if r == nil {
		return
	}
	r.upstream.WithLabelValues(endpoint, outcome(err)).Observe(time.Since(started).Seconds())
}

// CountExport records one export attempt
func (r *Recorder) CountExport(format string, err error) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(format, outcome(err)).Inc()
}

// CountSuperseded records a discarded stats load
func (r *Recorder) CountSuperseded() {
	if r == nil {
		return
	}
	r.superseded.Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
