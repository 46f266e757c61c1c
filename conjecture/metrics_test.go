package conjecture

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

func TestMetrics_Run(t *testing.T) {
	m, reg := newTestMetrics(t)

	h, err := New(Config{SourceSize: 5, Trials: 2, Workers: 1, Seed: 6, MaxSamples: testMaxSamples}, WithMetrics(m))
	require.NoError(t, err)
	result, err := h.Run(context.Background())
	require.NoError(t, err)

	name := SkinniestUnbeaten.String()
	assert.Equal(t, float64(result.Samples), testutil.ToFloat64(m.SamplesTotal.WithLabelValues(name)))
	assert.Equal(t, float64(result.Tested), testutil.ToFloat64(m.TrialsTotal.WithLabelValues(name)))
	assert.Equal(t, float64(result.Uninformative), testutil.ToFloat64(m.UninformativeTotal.WithLabelValues(name)))
	assert.Equal(t, float64(result.PassedHeuristic), testutil.ToFloat64(m.HeuristicPassedTotal.WithLabelValues(name)))

	var refuted float64
	if !result.Held {
		refuted = 1
	}
	assert.Equal(t, refuted, testutil.ToFloat64(m.CounterexamplesTotal.WithLabelValues(name)))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDurationSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HuffmanCodes))

	count, err := testutil.GatherAndCount(reg, "huffman_conjecture_samples_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeSample(SkinniestUnbeaten, Trial{Informative: true})
		m.observeRun(SkinniestUnbeaten, 1)
	})
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() {
		NewMetrics(reg)
	})
}

func TestMetrics_ObserveSample(t *testing.T) {
	m, _ := newTestMetrics(t)
	name := DominatedNotOptimal.String()

	m.observeSample(DominatedNotOptimal, Trial{HuffmanCodes: 1})
	m.observeSample(DominatedNotOptimal, Trial{HuffmanCodes: 12, Informative: true, PassedHeuristic: true})
	m.observeSample(DominatedNotOptimal, Trial{HuffmanCodes: 4, Informative: true, Counterexample: &Counterexample{}})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SamplesTotal.WithLabelValues(name)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UninformativeTotal.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HeuristicPassedTotal.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterexamplesTotal.WithLabelValues(name)))
}
