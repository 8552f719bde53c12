package observability

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvesearch/network"
	"github.com/katalvlaran/valvesearch/search"
)

func sample(t *testing.T) *network.Network {
	t.Helper()
	b, err := os.ReadFile("../../testdata/sample.txt")
	require.NoError(t, err)
	net, err := network.Parse(string(b))
	require.NoError(t, err)

	return net
}

func TestSearchCollector_RecordsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSearchCollector(reg)
	require.NoError(t, err)

	net := sample(t)
	c.ObserveNetwork(net)
	assert.Equal(t, float64(10), testutil.ToFloat64(c.Valves))
	assert.Equal(t, float64(6), testutil.ToFloat64(c.UsefulValves))

	opts := append(c.SearchOptions(search.StrategyParallel), search.WithStrategy(search.StrategyParallel))
	res, err := search.Solve(net, opts...)
	require.NoError(t, err)
	c.ObserveResult(res, 25*time.Millisecond)

	assert.Positive(t, testutil.ToFloat64(c.Branches.WithLabelValues("parallel")))
	assert.Positive(t, testutil.ToFloat64(c.Terminals.WithLabelValues("parallel")))
	assert.Zero(t, testutil.ToFloat64(c.Branches.WithLabelValues("exhaustive")))
	assert.Equal(t, float64(1651), testutil.ToFloat64(c.BestPressure))
	assert.Equal(t, uint64(1), histogramSampleCount(t, reg, "valves_search_duration_seconds", map[string]string{"strategy": "parallel"}))
}

func TestSearchCollector_Reregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSearchCollector(reg)
	require.NoError(t, err)
	second, err := NewSearchCollector(reg)
	require.NoError(t, err)

	first.Branches.WithLabelValues("exhaustive").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(second.Branches.WithLabelValues("exhaustive")))
}

func TestSearchCollector_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "valves_search_branches_total",
		Help: "Candidate moves explored, labeled by strategy.",
	}))
	_, err := NewSearchCollector(reg)
	assert.Error(t, err)
}

func TestSearchCollector_WriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSearchCollector(reg)
	require.NoError(t, err)
	c.BestPressure.Set(42)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), "# TYPE valves_search_best_pressure gauge")
	assert.Contains(t, buf.String(), "valves_search_best_pressure 42")
}

func TestSearchCollector_Nil(t *testing.T) {
	var c *SearchCollector
	assert.Nil(t, c.SearchOptions(search.StrategyExhaustive))
	c.ObserveNetwork(nil)
	c.ObserveResult(search.Result{}, time.Second)
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
