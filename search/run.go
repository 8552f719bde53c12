package search

import (
	"cmp"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// driven is the index of the one actor the search moves.
const driven = 0

// Run explores every legal move sequence from s and returns the terminal
// state with the highest pressure.
//
// Each call spends one turn: it accrues pressure, then either stops (budget
// exhausted) or tries every candidate on a clone and keeps the first outcome
// whose pressure is strictly greater than all before it. With no candidate
// the actor idles and the turn passes.
//
// Complexity: exponential in the number of useful valves; recursion depth
// is bounded by MaxTurns.
func (s State) Run() State {
	state := s
	if !state.advance() {
		// all done
		return state
	}

	var (
		best  State
		found bool
	)
	for _, im := range state.candidates(driven) {
		next := state.branch(driven, im)
		end := next.Run()
		if end.pressure > best.pressure {
			best, found = end, true
		}
	}
	if found {
		return best
	}

	// no move pays off, just wait it out
	return state.Run()
}

// RunMaxByKey is Run with the comparison done as one max-by-pressure
// reduction over all candidate outcomes. It reaches the same pressure as Run;
// among equal outcomes it may pick a different one.
func (s State) RunMaxByKey() State {
	state := s
	if !state.advance() {
		return state
	}

	cands := state.candidates(driven)
	if len(cands) == 0 {
		return state.RunMaxByKey()
	}
	ends := make([]State, len(cands))
	for i, im := range cands {
		next := state.branch(driven, im)
		ends[i] = next.RunMaxByKey()
	}

	return slices.MaxFunc(ends, byPressure)
}

// RunParallel is Run with the first level that offers a choice fanned out
// over at most workers goroutines (0 means GOMAXPROCS). Each goroutine owns
// its clone and runs Run below that level. The winner is picked exactly as
// Run picks it, so the result equals Run's.
func (s State) RunParallel(workers int) State {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	state := s
	if !state.advance() {
		return state
	}

	cands := state.candidates(driven)
	switch len(cands) {
	case 0:
		return state.RunParallel(workers)
	case 1:
		// nothing to fan out yet
		end := state.branch(driven, cands[0]).RunParallel(workers)
		if end.pressure > 0 {
			return end
		}

		return state.Run()
	}

	ends := make([]State, len(cands))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, im := range cands {
		g.Go(func() error {
			next := state.branch(driven, im)
			ends[i] = next.Run()
			return nil
		})
	}
	_ = g.Wait() // branches never fail

	var (
		best  State
		found bool
	)
	for _, end := range ends {
		if end.pressure > best.pressure {
			best, found = end, true
		}
	}
	if found {
		return best
	}

	return state.Run()
}

func byPressure(a, b State) int {
	return cmp.Compare(a.pressure, b.pressure)
}
