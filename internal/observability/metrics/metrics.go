package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for the prospect pipeline.
type PipelineMetrics struct {
	searchesTotal    *prometheus.CounterVec
	prospectsFound   prometheus.Histogram
	directoryLatency prometheus.Histogram
	generationsTotal *prometheus.CounterVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prospect",
			Subsystem: "pipeline",
			Name:      "searches_total",
			Help:      "Total prospect searches by outcome",
		}, []string{"status"}),
		prospectsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prospect",
			Subsystem: "pipeline",
			Name:      "prospects_found",
			Help:      "Prospects persisted per successful search",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 10},
		}),
		directoryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prospect",
			Subsystem: "pipeline",
			Name:      "directory_latency_seconds",
			Help:      "Latency of directory API calls",
			Buckets:   prometheus.DefBuckets,
		}),
		generationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prospect",
			Subsystem: "outreach",
			Name:      "generations_total",
			Help:      "Total message generations by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searchesTotal, m.prospectsFound, m.directoryLatency, m.generationsTotal)
	return m
}

func (m *PipelineMetrics) ObserveSearch(status string, found int) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.prospectsFound.Observe(float64(found))
	}
}

func (m *PipelineMetrics) ObserveDirectoryLatency(seconds float64) {
	if m == nil {
		return
	}
	m.directoryLatency.Observe(seconds)
}

// ObserveGeneration records a generation outcome: "ok" for model text,
// "fallback" for the templated message.
func (m *PipelineMetrics) ObserveGeneration(outcome string) {
	if m == nil {
		return
	}
	m.generationsTotal.WithLabelValues(outcome).Inc()
}
