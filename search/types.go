package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/valvesearch/core"
)

// Sentinel errors for the search entry points.
var (
	// ErrNetworkNil is returned if a nil network pointer is passed.
	ErrNetworkNil = errors.New("search: network is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrUnknownStrategy is returned by ParseStrategy for an unrecognised name.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
)

const (
	// DefaultMaxTurns is the turn budget used when none is given.
	DefaultMaxTurns uint64 = 30

	// NumActors is the size of the actor array; only index 0 is driven.
	NumActors = 1
)

// DefaultStart is the conventional starting valve, "AA".
var DefaultStart = core.Name{'A', 'A'}

// Strategy selects how sibling outcomes are compared.
type Strategy int

const (
	// StrategyExhaustive tracks the best outcome while iterating candidates.
	StrategyExhaustive Strategy = iota

	// StrategyMaxByKey collects every outcome and reduces by pressure.
	StrategyMaxByKey

	// StrategyParallel explores root-level candidates on separate goroutines.
	StrategyParallel
)

var strategyNames = [...]string{
	StrategyExhaustive: "exhaustive",
	StrategyMaxByKey:   "max-by-key",
	StrategyParallel:   "parallel",
}

// String returns the flag spelling of s.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

// ParseStrategy is the inverse of Strategy.String. Matching ignores case.
func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if strings.EqualFold(s, name) {
			return Strategy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Option configures a search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for Solve and NewState.
type Options struct {
	// MaxTurns is the total turn budget. Must be > 0.
	MaxTurns uint64

	// Start is the valve the actor begins at.
	Start core.Name

	// Strategy selects Run, RunMaxByKey or RunParallel.
	Strategy Strategy

	// Workers bounds goroutines for StrategyParallel; 0 means GOMAXPROCS.
	Workers int

	// OnBranch is called every time a candidate move is explored, with the
	// turn it is explored on. Must be safe for concurrent use under
	// StrategyParallel.
	OnBranch func(turn uint64)

	// OnTerminal is called with the pressure of every terminal state reached.
	// Must be safe for concurrent use under StrategyParallel.
	OnTerminal func(pressure uint64)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with 30 turns, start "AA", the exhaustive
// strategy and no hooks.
func DefaultOptions() Options {
	return Options{
		MaxTurns: DefaultMaxTurns,
		Start:    DefaultStart,
		Strategy: StrategyExhaustive,
	}
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithMaxTurns sets the turn budget. Zero is invalid.
func WithMaxTurns(n uint64) Option {
	return func(o *Options) {
		if n == 0 {
			o.fail("MaxTurns must be positive")
			return
		}
		o.MaxTurns = n
	}
}

// WithStart sets the starting valve.
func WithStart(name core.Name) Option {
	return func(o *Options) {
		if !name.Valid() {
			o.fail("invalid start %q", name.String())
			return
		}
		o.Start = name
	}
}

// WithStrategy selects the search strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s < StrategyExhaustive || s > StrategyParallel {
			o.fail("unknown strategy %d", int(s))
			return
		}
		o.Strategy = s
	}
}

// WithWorkers bounds parallelism for StrategyParallel.
//
//	n > 0: at most n goroutines
//	n == 0: GOMAXPROCS
//	n < 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail("Workers cannot be negative (%d)", n)
			return
		}
		o.Workers = n
	}
}

// WithOnBranch registers a callback run per explored candidate move.
func WithOnBranch(fn func(turn uint64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBranch = fn
		}
	}
}

// WithOnTerminal registers a callback run per terminal state.
func WithOnTerminal(fn func(pressure uint64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnTerminal = fn
		}
	}
}

// Result is the outcome of Solve.
type Result struct {
	// Pressure is the best cumulative pressure released.
	Pressure uint64

	// PressurePerTurn is the release rate at the end of the best run.
	PressurePerTurn uint64

	// MaxTurns and Start echo the search parameters.
	MaxTurns uint64
	Start    core.Name

	// Strategy is the strategy that produced the result.
	Strategy Strategy

	// Opened lists the valves open at the end of the best run, in name order.
	Opened []core.Name
}
