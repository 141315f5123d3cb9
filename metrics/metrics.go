// Package metrics records the outcome of a consolidation run as prometheus
// metrics, written to a textfile for the node exporter to collect.
package metrics

import (
	"fmt"

	"github.com/etnz/pefolio"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pec"

// Run holds the metrics of one run on their own registry.
type Run struct {
	Registry *prometheus.Registry

	Deals       prometheus.Gauge
	Events      prometheus.Gauge
	Dropped     *prometheus.GaugeVec
	Mismatches  prometheus.Gauge
	MaxDelta    prometheus.Gauge
	Status      prometheus.Gauge
	LastSuccess prometheus.Gauge
}

// NewRun registers the run metrics on a fresh registry.
func NewRun() *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),
		Deals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "deals",
			Help: "Number of deal rows in the metadata table.",
		}),
		Events: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "measures",
			Help: "Number of events in the measures table.",
		}),
		Dropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "dropped_rows",
			Help: "Rows dropped or corrected while normalizing, by reason.",
		}, []string{"reason"}),
		Mismatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "audit", Name: "mismatches",
			Help: "Deals whose commitment delta exceeds the tolerance.",
		}),
		MaxDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "audit", Name: "max_delta_usd",
			Help: "Largest commitment delta of the run, in USD.",
		}),
		Status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "audit", Name: "ok",
			Help: "1 when every delta is within the tolerance, 0 otherwise.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_timestamp_seconds",
			Help: "Unix time of the last completed run.",
		}),
	}
	r.Registry.MustRegister(r.Deals, r.Events, r.Dropped, r.Mismatches, r.MaxDelta, r.Status, r.LastSuccess)
	return r
}

// Observe sets the metrics from the result of a run.
func (r *Run) Observe(res *pefolio.Result) {
	r.Deals.Set(float64(len(res.Metadata.Rows)))
	r.Events.Set(float64(len(res.Measures.Rows)))

	d := res.Diagnostics
	r.Dropped.WithLabelValues("no_deal_name").Set(float64(d.DroppedDeals))
	r.Dropped.WithLabelValues("bad_event").Set(float64(d.DroppedEvents))
	r.Dropped.WithLabelValues("duplicate").Set(float64(d.DuplicateEvents))
	r.Dropped.WithLabelValues("defaulted_amount").Set(float64(d.DefaultedAmounts))

	r.Mismatches.Set(float64(len(res.Audit.Mismatches())))
	if len(res.Audit.Records) > 0 {
		// records are sorted by descending delta.
		r.MaxDelta.Set(res.Audit.Records[0].Delta.InexactFloat64())
	}
	if res.Audit.Status == pefolio.AuditOK {
		r.Status.Set(1)
	} else {
		r.Status.Set(0)
	}
	r.LastSuccess.SetToCurrentTime()
}

// WriteFile writes the metrics in the text exposition format. The file is
// replaced atomically.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("writing metrics to %q: %w", path, err)
	}
	return nil
}
