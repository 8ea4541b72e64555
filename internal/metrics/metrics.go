package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the loader's Prometheus collectors.
type Metrics struct {
	DocumentsKept     *prometheus.GaugeVec
	DocumentsSkipped  *prometheus.GaugeVec
	MentionsIndexed   *prometheus.GaugeVec
	InstancesProduced *prometheus.CounterVec
	LoadDuration      prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsKept: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentionset_documents_kept",
				Help: "Manifest pmids with a preprocessed document",
			},
			[]string{"split"},
		),
		DocumentsSkipped: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentionset_documents_skipped",
				Help: "Manifest pmids dropped for lacking a preprocessed document",
			},
			[]string{"split"},
		),
		MentionsIndexed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentionset_mentions_indexed",
				Help: "Mentions held in the index",
			},
			[]string{"split"},
		),
		InstancesProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentionset_instances_produced_total",
				Help: "Instances yielded to readers",
			},
			[]string{"split"},
		),
		LoadDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mentionset_load_duration_seconds",
				Help: "Wall time of the last corpus load",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.DocumentsKept, m.DocumentsSkipped, m.MentionsIndexed, m.InstancesProduced, m.LoadDuration)
	}
	return m
}

// ObserveSplit records load results for one split.
func (m *Metrics) ObserveSplit(split string, kept, skipped, mentions int) {
	if m == nil {
		return
	}
	m.DocumentsKept.WithLabelValues(split).Set(float64(kept))
	m.DocumentsSkipped.WithLabelValues(split).Set(float64(skipped))
	m.MentionsIndexed.WithLabelValues(split).Set(float64(mentions))
}

// ObserveLoad records how long a load took.
func (m *Metrics) ObserveLoad(d time.Duration) {
	if m == nil {
		return
	}
	m.LoadDuration.Set(d.Seconds())
}

// IncInstances counts one yielded instance.
func (m *Metrics) IncInstances(split string) {
	if m == nil {
		return
	}
	m.InstancesProduced.WithLabelValues(split).Inc()
}
