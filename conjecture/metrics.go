package conjecture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "huffman_conjecture"

// Metrics holds the Prometheus collectors updated by a Harness.  Every
// collector is labeled by conjecture name.  A nil *Metrics records nothing.
type Metrics struct {
	// SamplesTotal counts Sources drawn, informative or not.
	SamplesTotal *prometheus.CounterVec

	// TrialsTotal counts informative Sources tested.
	TrialsTotal *prometheus.CounterVec

	// UninformativeTotal counts Sources skipped as uninformative.
	UninformativeTotal *prometheus.CounterVec

	// HeuristicPassedTotal counts trials with a heuristic-passing candidate.
	HeuristicPassedTotal *prometheus.CounterVec

	// CounterexamplesTotal counts refuting Sources.
	CounterexamplesTotal *prometheus.CounterVec

	// HuffmanCodes observes the number of Huffman trees per Source.
	HuffmanCodes *prometheus.HistogramVec

	// RunDurationSeconds observes the wall time of each Run.
	RunDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.  It panics
// if any is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := []string{"conjecture"}
	return &Metrics{
		SamplesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_total",
			Help:      "Total sources drawn, informative or not",
		}, labels),
		TrialsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "trials_total",
			Help:      "Total informative sources tested",
		}, labels),
		UninformativeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uninformative_total",
			Help:      "Total sources skipped because their Huffman codes all tie",
		}, labels),
		HeuristicPassedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "heuristic_passed_total",
			Help:      "Total trials in which some unbeaten Huffman code passed the optimality heuristic",
		}, labels),
		CounterexamplesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "counterexamples_total",
			Help:      "Total sources refuting the conjecture",
		}, labels),
		HuffmanCodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "huffman_codes",
			Help:      "Number of distinct Huffman trees per source",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, labels),
		RunDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of each harness run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}, labels),
	}
}

func (m *Metrics) observeSample(c Conjecture, trial Trial) {
	if m == nil {
		return
	}
	name := c.String()
	m.SamplesTotal.WithLabelValues(name).Inc()
	m.HuffmanCodes.WithLabelValues(name).Observe(float64(trial.HuffmanCodes))
	if !trial.Informative {
		m.UninformativeTotal.WithLabelValues(name).Inc()
		return
	}
	m.TrialsTotal.WithLabelValues(name).Inc()
	if trial.PassedHeuristic {
		m.HeuristicPassedTotal.WithLabelValues(name).Inc()
	}
	if trial.Counterexample != nil {
		m.CounterexamplesTotal.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) observeRun(c Conjecture, seconds float64) {
	if m == nil {
		return
	}
	m.RunDurationSeconds.WithLabelValues(c.String()).Observe(seconds)
}
