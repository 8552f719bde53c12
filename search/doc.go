// Package search finds the move sequence that releases the most pressure
// from a network.Network within a fixed turn budget.
//
// Model
//
//   - A State holds the turn counter, the cumulative pressure, the current
//     release rate, the set of opened valves and an array of actors. Only
//     actor 0 is driven; the array leaves room for cooperating searchers.
//   - An idle actor may start any Move to an unopened useful valve whose Cost
//     (hops + 1 to open) fits in the turns left. Once started, a move cannot
//     be abandoned: the actor travels one hop per turn and opens the target
//     on the final turn.
//   - Pressure is accrued at the start of each turn using the rate in force
//     before that turn's actions, so a valve opened on turn t first counts
//     on turn t+1.
//
// Strategies
//
//	StrategyExhaustive  State.Run          best-so-far comparison, first wins ties
//	StrategyMaxByKey    State.RunMaxByKey  one max-by-pressure reduction per level
//	StrategyParallel    State.RunParallel  root choices fanned out over goroutines
//
// All three return the same maximal pressure. The Network is shared by
// reference; every branch works on its own State clone.
//
// Usage
//
//	net, _ := network.Parse(input)
//	res, err := search.Solve(net,
//	    search.WithMaxTurns(30),
//	    search.WithStart(core.MustName("AA")),
//	    search.WithStrategy(search.StrategyParallel),
//	)
//	fmt.Println(res.Pressure)
//
// Errors
//
//   - ErrNetworkNil              if the network pointer is nil.
//   - ErrOptionViolation         for a zero turn budget, bad start, bad strategy or negative workers.
//   - network.ErrValveNotFound   if the start valve has no record.
//
// A lookup miss during the search itself means the Network is inconsistent
// and panics.
package search
