// Package observability exposes Prometheus metrics for network construction
// and search runs.
package observability

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/valvesearch/network"
	"github.com/katalvlaran/valvesearch/search"
)

// SearchCollector bundles the search metrics and the hooks that feed them.
type SearchCollector struct {
	gatherer prometheus.Gatherer

	Branches  *prometheus.CounterVec
	Terminals *prometheus.CounterVec
	Durations *prometheus.HistogramVec

	BestPressure prometheus.Gauge
	Valves       prometheus.Gauge
	UsefulValves prometheus.Gauge
}

// NewSearchCollector registers the search metrics against reg, defaulting to
// the global Prometheus registry when nil.
func NewSearchCollector(reg prometheus.Registerer) (*SearchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	branches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "valves_search_branches_total",
		Help: "Candidate moves explored, labeled by strategy.",
	}, []string{"strategy"}), "valves_search_branches_total")
	if err != nil {
		return nil, err
	}
	terminals, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "valves_search_terminal_states_total",
		Help: "Terminal states reached, labeled by strategy.",
	}, []string{"strategy"}), "valves_search_terminal_states_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "valves_search_duration_seconds",
		Help:    "Wall time of a full search in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"strategy"}), "valves_search_duration_seconds")
	if err != nil {
		return nil, err
	}
	best, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "valves_search_best_pressure",
		Help: "Best cumulative pressure of the last completed search.",
	}), "valves_search_best_pressure")
	if err != nil {
		return nil, err
	}
	valves, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "valves_network_valves",
		Help: "Number of valves in the loaded network.",
	}), "valves_network_valves")
	if err != nil {
		return nil, err
	}
	useful, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "valves_network_useful_valves",
		Help: "Number of valves with positive flow in the loaded network.",
	}), "valves_network_useful_valves")
	if err != nil {
		return nil, err
	}

	return &SearchCollector{
		gatherer:     gatherer,
		Branches:     branches,
		Terminals:    terminals,
		Durations:    durations,
		BestPressure: best,
		Valves:       valves,
		UsefulValves: useful,
	}, nil
}

// SearchOptions returns hooks that count branches and terminal states for a
// run with strategy st. The hooks are safe for concurrent use.
func (c *SearchCollector) SearchOptions(st search.Strategy) []search.Option {
	if c == nil {
		return nil
	}
	branches := c.Branches.WithLabelValues(st.String())
	terminals := c.Terminals.WithLabelValues(st.String())

	return []search.Option{
		search.WithOnBranch(func(uint64) { branches.Inc() }),
		search.WithOnTerminal(func(uint64) { terminals.Inc() }),
	}
}

// ObserveNetwork records the size of net.
func (c *SearchCollector) ObserveNetwork(net *network.Network) {
	if c == nil || net == nil {
		return
	}
	c.Valves.Set(float64(net.Len()))
	c.UsefulValves.Set(float64(len(net.UsefulValves())))
}

// ObserveResult records a finished search.
func (c *SearchCollector) ObserveResult(res search.Result, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Durations.WithLabelValues(res.Strategy.String()).Observe(elapsed.Seconds())
	c.BestPressure.Set(float64(res.Pressure))
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (c *SearchCollector) WriteText(w io.Writer) error {
	mfs, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("observability: gather: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("observability: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
