package core

import "fmt"

// Graph is the raw tunnel graph: every parsed Valve keyed by name.
//
// Links may name valves that have no record; consumers decide whether that is
// an error (bfs reports ErrUnknownLink). A Graph is not safe for concurrent
// mutation but may be read concurrently once built.
type Graph struct {
	valves NameMap[Valve]
	order  []Name // insertion order
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddValve inserts v. It returns ErrInvalidName for a malformed name or link
// and ErrDuplicateValve if v.Name is already present.
//
// Complexity: O(len(v.Links))
func (g *Graph) AddValve(v Valve) error {
	if !v.Name.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidName, v.Name.String())
	}
	for _, l := range v.Links {
		if !l.Valid() {
			return fmt.Errorf("%w: link %q of %s", ErrInvalidName, l.String(), v.Name)
		}
	}
	if g.valves.Contains(v.Name) {
		return fmt.Errorf("%w: %s", ErrDuplicateValve, v.Name)
	}
	g.valves.Insert(v.Name, v)
	g.order = append(g.order, v.Name)

	return nil
}

// Valve returns the record for name.
func (g *Graph) Valve(name Name) (Valve, bool) {
	return g.valves.Get(name)
}

// HasValve reports whether name has a record.
func (g *Graph) HasValve(name Name) bool {
	return g.valves.Contains(name)
}

// Links returns the adjacency list of name, or nil if it has no record.
func (g *Graph) Links(name Name) []Name {
	if v := g.valves.Ptr(name); v != nil {
		return v.Links
	}

	return nil
}

// Names returns valve names in the order they were added.
func (g *Graph) Names() []Name {
	out := make([]Name, len(g.order))
	copy(out, g.order)

	return out
}

// Len returns the number of valves.
func (g *Graph) Len() int { return g.valves.Len() }
