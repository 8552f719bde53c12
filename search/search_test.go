package search_test

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvesearch/core"
	"github.com/katalvlaran/valvesearch/network"
	"github.com/katalvlaran/valvesearch/search"
)

var strategies = []search.Strategy{
	search.StrategyExhaustive,
	search.StrategyMaxByKey,
	search.StrategyParallel,
}

func mustNetwork(t testing.TB, text string) *network.Network {
	t.Helper()
	net, err := network.Parse(text)
	require.NoError(t, err)

	return net
}

func sampleNetwork(t testing.TB) *network.Network {
	t.Helper()
	b, err := os.ReadFile("../testdata/sample.txt")
	require.NoError(t, err)

	return mustNetwork(t, string(b))
}

const pair = `Valve AA has flow rate=0; tunnel leads to valve BB
Valve BB has flow rate=3; tunnel leads to valve AA`

func TestSolve_Errors(t *testing.T) {
	_, err := search.Solve(nil)
	assert.ErrorIs(t, err, search.ErrNetworkNil)

	net := mustNetwork(t, pair)
	cases := map[string]search.Option{
		"zero turns":       search.WithMaxTurns(0),
		"invalid start":    search.WithStart(core.Name{'a', 'a'}),
		"negative workers": search.WithWorkers(-1),
		"bad strategy":     search.WithStrategy(search.Strategy(9)),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := search.Solve(net, opt)
			assert.ErrorIs(t, err, search.ErrOptionViolation)
		})
	}

	_, err = search.Solve(net, search.WithStart(core.MustName("ZZ")))
	assert.ErrorIs(t, err, network.ErrValveNotFound)

	_, err = search.NewState(net, search.WithStart(core.MustName("ZZ")))
	assert.ErrorIs(t, err, network.ErrValveNotFound)
}

// TestSolve_SingleValve never has a candidate, so all turns idle.
func TestSolve_SingleValve(t *testing.T) {
	net := mustNetwork(t, "Valve AA has flow rate=0; tunnel leads to valve AA")
	for _, st := range strategies {
		res, err := search.Solve(net, search.WithMaxTurns(5), search.WithStrategy(st))
		require.NoError(t, err)
		assert.Zero(t, res.Pressure, st.String())
		assert.Empty(t, res.Opened)
	}
}

// TestSolve_Pair traces AA(0)-BB(3): turn 1 travels, turn 2 opens, and every
// later turn accrues 3.
func TestSolve_Pair(t *testing.T) {
	net := mustNetwork(t, pair)
	want := map[uint64]uint64{1: 0, 2: 0, 3: 3, 4: 6, 10: 24}
	for turns, pressure := range want {
		for _, st := range strategies {
			res, err := search.Solve(net, search.WithMaxTurns(turns), search.WithStrategy(st))
			require.NoError(t, err)
			assert.Equal(t, pressure, res.Pressure, "turns=%d strategy=%s", turns, st)
		}
	}

	res, err := search.Solve(net, search.WithMaxTurns(4))
	require.NoError(t, err)
	assert.Equal(t, []core.Name{core.MustName("BB")}, res.Opened)
	assert.Equal(t, uint64(3), res.PressurePerTurn)
	assert.Equal(t, uint64(4), res.MaxTurns)
	assert.Equal(t, search.DefaultStart, res.Start)
	assert.Equal(t, search.StrategyExhaustive, res.Strategy)
}

// TestSolve_Sample checks the well-known answer for thirty turns.
func TestSolve_Sample(t *testing.T) {
	net := sampleNetwork(t)
	for _, st := range strategies {
		res, err := search.Solve(net, search.WithStrategy(st), search.WithWorkers(2))
		require.NoError(t, err)
		assert.Equal(t, uint64(1651), res.Pressure, st.String())
		assert.Equal(t, search.DefaultMaxTurns, res.MaxTurns)
	}
}

// TestSolve_Monotonic: a larger budget never lowers the best pressure.
func TestSolve_Monotonic(t *testing.T) {
	net := sampleNetwork(t)
	var prev uint64
	for turns := uint64(1); turns <= search.DefaultMaxTurns; turns++ {
		res, err := search.Solve(net, search.WithMaxTurns(turns))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Pressure, prev, "turns=%d", turns)
		prev = res.Pressure
	}
}

// TestSolve_OtherStart starts away from AA.
func TestSolve_OtherStart(t *testing.T) {
	net := mustNetwork(t, pair)
	res, err := search.Solve(net, search.WithStart(core.MustName("BB")), search.WithMaxTurns(4))
	require.NoError(t, err)
	// BB itself is never a candidate from BB and AA has no flow
	assert.Zero(t, res.Pressure)
	assert.Equal(t, core.MustName("BB"), res.Start)
}

// TestRun_IdleTerminates covers a useful valve that is too far to reach.
func TestRun_IdleTerminates(t *testing.T) {
	net := mustNetwork(t, `Valve AA has flow rate=0; tunnel leads to valve BB
Valve BB has flow rate=0; tunnels lead to valves AA, CC
Valve CC has flow rate=0; tunnels lead to valves BB, DD
Valve DD has flow rate=9; tunnel leads to valve CC`)

	s, err := search.NewState(net, search.WithMaxTurns(3))
	require.NoError(t, err)
	for _, end := range []search.State{s.Run(), s.RunMaxByKey(), s.RunParallel(0)} {
		assert.Equal(t, uint64(3), end.Turn())
		assert.Zero(t, end.TurnsLeft())
		assert.Zero(t, end.Pressure())
	}
	// the initial state is untouched
	assert.Zero(t, s.Turn())
}

// TestRun_StatesAgree compares the three strategies on the same state.
func TestRun_StatesAgree(t *testing.T) {
	net := sampleNetwork(t)
	for _, turns := range []uint64{6, 12, 20, 26} {
		s, err := search.NewState(net, search.WithMaxTurns(turns))
		require.NoError(t, err)

		want := s.Run().Pressure()
		assert.Equal(t, want, s.RunMaxByKey().Pressure(), "turns=%d", turns)
		assert.Equal(t, want, s.RunParallel(3).Pressure(), "turns=%d", turns)
	}
}

// TestHooks checks that callbacks observe the search, including under the
// parallel strategy.
func TestHooks(t *testing.T) {
	net := sampleNetwork(t)
	for _, st := range strategies {
		var (
			branches atomic.Int64
			mu       sync.Mutex
			maxSeen  uint64
		)
		res, err := search.Solve(net,
			search.WithStrategy(st),
			search.WithMaxTurns(15),
			search.WithOnBranch(func(turn uint64) {
				assert.Less(t, turn, uint64(15))
				branches.Add(1)
			}),
			search.WithOnTerminal(func(p uint64) {
				mu.Lock()
				defer mu.Unlock()
				if p > maxSeen {
					maxSeen = p
				}
			}),
		)
		require.NoError(t, err)
		assert.Positive(t, branches.Load(), st.String())
		assert.Equal(t, res.Pressure, maxSeen, st.String())
	}
}

func TestStrategy_Names(t *testing.T) {
	for _, st := range strategies {
		got, err := search.ParseStrategy(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	got, err := search.ParseStrategy("Max-By-Key")
	require.NoError(t, err)
	assert.Equal(t, search.StrategyMaxByKey, got)

	_, err = search.ParseStrategy("greedy")
	assert.ErrorIs(t, err, search.ErrUnknownStrategy)
	assert.Equal(t, "Strategy(7)", search.Strategy(7).String())
}

func TestMove_Cost(t *testing.T) {
	net := sampleNetwork(t)
	conns := net.MustConnections(core.MustName("AA"))
	hh, ok := conns.Get(core.MustName("HH"))
	require.True(t, ok)

	mv := search.Move{Target: core.MustName("HH"), Path: hh.Path}
	assert.Equal(t, uint64(6), mv.Cost())
}
