// Package bfs computes, for one valve of a core.Graph, the shortest hop path
// to every reachable valve with positive flow.
//
// What
//
//   - Layered breadth-first expansion from a start valve over the raw tunnel
//     graph. Zero-flow valves are traversed as pass-through hops but are not
//     part of the result.
//   - Returns Connections: a core.NameMap from destination to Connection,
//     holding the hop-by-hop Path and the destination's flow rate.
//   - The start valve never appears in its own Connections.
//
// Determinism
//
//	Each layer is a core.NameMap and is expanded in name order; each valve's
//	links are followed in input order. The first discovery of a valve wins and
//	later rediscoveries are ignored, so among equal-length paths the one found
//	first in that order is kept.
//
// Termination
//
//	Expansion stops as soon as a layer discovers no new valve. The valve set is
//	finite, so every call terminates.
//
// Complexity (V = valves, E = tunnels)
//
//   - Time:   O(V + E) expansion plus O(V·L) to copy paths of length L.
//   - Memory: O(V·L) for the stored paths.
//
// Usage
//
//	conns, err := bfs.Discover(g, core.MustName("AA"))
//	if err != nil {
//	    // ErrGraphNil, ErrStartNotFound, ErrUnknownLink, ErrOptionViolation, or a hook error
//	}
//	for dest, c := range conns.All() {
//	    fmt.Println(dest, len(c.Path), c.Flow)
//	}
//
// Options
//
//   - WithMaxDepth(d): do not follow paths longer than d hops (0 = no limit).
//   - WithOnVisit(fn): called once per newly discovered valve; an error aborts.
package bfs
