// Package bfs provides tunable options, result types and error definitions
// for connection discovery over a core.Graph.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/valvesearch/core"
)

// Sentinel errors for connection discovery.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartNotFound is returned when the start valve has no record.
	ErrStartNotFound = errors.New("bfs: start valve not found")

	// ErrUnknownLink is returned when a tunnel leads to a valve with no record.
	ErrUnknownLink = errors.New("bfs: tunnel to unknown valve")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Hop is one tunnel traversal, taking one turn.
type Hop struct {
	From core.Name
	To   core.Name
}

// String renders the hop as "AA->BB".
func (h Hop) String() string {
	return h.From.String() + "->" + h.To.String()
}

// Path is an ordered hop sequence. len(Path) is the number of travel turns.
type Path []Hop

// Connection describes how to reach one positive-flow valve.
type Connection struct {
	// Path is a shortest hop path from the start to the destination.
	Path Path

	// Flow is the destination's flow rate.
	Flow uint64
}

// Connections maps each reachable positive-flow valve to its Connection.
type Connections = core.NameMap[Connection]

// Option configures discovery via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for Discover.
type Options struct {
	// OnVisit is called when a valve is discovered for the first time, with
	// its hop distance from the start. Returning an error aborts discovery.
	OnVisit func(name core.Name, depth int) error

	// MaxDepth, if > 0, stops following paths longer than MaxDepth hops.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with no depth limit and a no-op hook.
func DefaultOptions() Options {
	return Options{
		OnVisit:  func(core.Name, int) error { return nil },
		MaxDepth: 0,
	}
}

// WithOnVisit registers a callback run once per newly discovered valve.
func WithOnVisit(fn func(name core.Name, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits path length.
//
//	d > 0: paths of at most d hops
//	d == 0: explicit no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}
