// Package bfs runs layered breadth-first expansion over a core.Graph,
// recording the first-found shortest path to every reachable valve.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/valvesearch/core"
)

// walker encapsulates mutable expansion state.
type walker struct {
	graph   *core.Graph
	opts    Options
	start   core.Name
	found   Connections  // every discovered valve, start included
	current core.NameSet // the layer being expanded
	depth   int          // hop distance of current
}

// Discover returns the Connections of start in g, applying any number of
// functional Options.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, ErrUnknownLink for a tunnel to a valve
// with no record, or any user-supplied hook error.
func Discover(g *core.Graph, start core.Name, opts ...Option) (*Connections, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	sv, ok := g.Valve(start)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStartNotFound, start)
	}

	w := &walker{graph: g, opts: o, start: start}
	// Seed the first layer with the start valve (empty path)
	w.found.Insert(start, Connection{Path: Path{}, Flow: sv.Flow})
	w.current.Insert(start, struct{}{})
	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.result(), nil
}

// loop expands layers until one discovers nothing new or MaxDepth is reached.
func (w *walker) loop() error {
	for !w.current.IsEmpty() {
		if w.opts.MaxDepth > 0 && w.depth >= w.opts.MaxDepth {
			return nil
		}
		next, err := w.expand()
		if err != nil {
			return err
		}
		w.current = next
		w.depth++
	}

	return nil
}

// expand follows every link out of the current layer, in name order and then
// adjacency order, and returns the layer of newly discovered valves.
func (w *walker) expand() (core.NameSet, error) {
	var next core.NameSet
	for name := range w.current.All() {
		path := w.found.Ptr(name).Path
		for _, link := range w.graph.Links(name) {
			lv, ok := w.graph.Valve(link)
			if !ok {
				return next, fmt.Errorf("%w: %s->%s", ErrUnknownLink, name, link)
			}
			// first discovery wins
			if w.found.Contains(link) {
				continue
			}
			p := make(Path, len(path), len(path)+1)
			copy(p, path)
			p = append(p, Hop{From: name, To: link})
			w.found.Insert(link, Connection{Path: p, Flow: lv.Flow})
			next.Insert(link, struct{}{})

			if err := w.opts.OnVisit(link, w.depth+1); err != nil {
				return next, fmt.Errorf("bfs: OnVisit error at %s: %w", link, err)
			}
		}
	}

	return next, nil
}

// result drops the start valve and every zero-flow valve from found.
func (w *walker) result() *Connections {
	res := new(Connections)
	for name, c := range w.found.All() {
		if name == w.start || c.Flow == 0 {
			continue
		}
		res.Insert(name, c)
	}

	return res
}
