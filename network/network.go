// Package network holds the read-only puzzle model used by the search: every
// valve together with its precomputed Connections.
//
// A Network is built once, by New or Parse, and never mutated afterward, so a
// single *Network may be shared by any number of goroutines.
package network

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/valvesearch/bfs"
	"github.com/katalvlaran/valvesearch/core"
)

// ErrValveNotFound is returned when a lookup names a valve with no record.
var ErrValveNotFound = errors.New("network: valve not found")

// entry pairs a valve with its finalized Connections.
type entry struct {
	valve core.Valve
	conns *bfs.Connections
}

// Network maps every valve name to its record and Connections.
type Network struct {
	valves core.NameMap[entry]
	names  []core.Name // input order
	useful []core.Name // flow > 0, name order
}

// New computes the Connections of every valve in g.
// It fails if any valve's tunnels lead to a valve with no record.
//
// Complexity: O(V·(V + E)).
func New(g *core.Graph) (*Network, error) {
	if g == nil {
		return nil, bfs.ErrGraphNil
	}
	net := &Network{names: g.Names()}
	for _, name := range net.names {
		v, _ := g.Valve(name)
		conns, err := bfs.Discover(g, name)
		if err != nil {
			return nil, fmt.Errorf("network: connections of %s: %w", name, err)
		}
		net.valves.Insert(name, entry{valve: v, conns: conns})
	}
	for name, e := range net.valves.All() {
		if e.valve.Flow > 0 {
			net.useful = append(net.useful, name)
		}
	}

	return net, nil
}

// Parse is core.Parse followed by New.
func Parse(text string) (*Network, error) {
	g, err := core.Parse(text)
	if err != nil {
		return nil, err
	}

	return New(g)
}

// Has reports whether name has a record.
func (n *Network) Has(name core.Name) bool {
	return n.valves.Contains(name)
}

// Valve returns the record for name.
func (n *Network) Valve(name core.Name) (core.Valve, error) {
	e := n.valves.Ptr(name)
	if e == nil {
		return core.Valve{}, fmt.Errorf("%w: %s", ErrValveNotFound, name)
	}

	return e.valve, nil
}

// Connections returns the positive-flow valves reachable from name.
// The result is shared and must not be modified.
func (n *Network) Connections(name core.Name) (*bfs.Connections, error) {
	e := n.valves.Ptr(name)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrValveNotFound, name)
	}

	return e.conns, nil
}

// MustConnections is like Connections but panics when name is absent.
// A miss means the Network was built inconsistently.
func (n *Network) MustConnections(name core.Name) *bfs.Connections {
	conns, err := n.Connections(name)
	if err != nil {
		panic(fmt.Sprintf("network: invariant violated: %v", err))
	}

	return conns
}

// MustFlow returns the flow rate of name, panicking when it is absent.
func (n *Network) MustFlow(name core.Name) uint64 {
	e := n.valves.Ptr(name)
	if e == nil {
		panic(fmt.Sprintf("network: invariant violated: %v: %s", ErrValveNotFound, name))
	}

	return e.valve.Flow
}

// Names returns every valve name in input order.
func (n *Network) Names() []core.Name {
	out := make([]core.Name, len(n.names))
	copy(out, n.names)

	return out
}

// UsefulValves returns the names with positive flow, in name order.
func (n *Network) UsefulValves() []core.Name {
	out := make([]core.Name, len(n.useful))
	copy(out, n.useful)

	return out
}

// Len returns the number of valves.
func (n *Network) Len() int { return n.valves.Len() }
