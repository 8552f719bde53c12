// Package search - entry point.
//
// Solve validates its inputs, builds the initial State (turn 0, every actor
// idle at the start valve) and dispatches to the selected strategy.
package search

import (
	"fmt"

	"github.com/katalvlaran/valvesearch/network"
)

// buildOptions applies opts over the defaults and validates them against net.
func buildOptions(net *network.Network, opts []Option) (Options, error) {
	if net == nil {
		return Options{}, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	if !net.Has(o.Start) {
		return Options{}, fmt.Errorf("search: start: %w: %s", network.ErrValveNotFound, o.Start)
	}

	return o, nil
}

// Solve returns the best cumulative pressure achievable on net.
//
// Contracts:
//   - net must be non-nil and contain the start valve.
//   - defaults: 30 turns, start "AA", StrategyExhaustive.
//
// Errors: ErrNetworkNil, ErrOptionViolation, network.ErrValveNotFound.
func Solve(net *network.Network, opts ...Option) (Result, error) {
	o, err := buildOptions(net, opts)
	if err != nil {
		return Result{}, err
	}

	initial := newState(net, o)
	var end State
	switch o.Strategy {
	case StrategyMaxByKey:
		end = initial.RunMaxByKey()
	case StrategyParallel:
		end = initial.RunParallel(o.Workers)
	default:
		end = initial.Run()
	}

	return Result{
		Pressure:        end.Pressure(),
		PressurePerTurn: end.PressurePerTurn(),
		MaxTurns:        o.MaxTurns,
		Start:           o.Start,
		Strategy:        o.Strategy,
		Opened:          end.Opened(),
	}, nil
}
