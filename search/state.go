package search

import (
	"github.com/katalvlaran/valvesearch/bfs"
	"github.com/katalvlaran/valvesearch/core"
	"github.com/katalvlaran/valvesearch/network"
)

// Move is a candidate action: travel along Path to Target, then open it.
// Path points into the Network's shared Connections and must not be modified.
type Move struct {
	Target core.Name
	Path   bfs.Path
}

// Cost is the number of turns the move takes: one per hop plus one to open.
func (m Move) Cost() uint64 {
	travelTurns := uint64(len(m.Path))
	const openTurns = 1

	return travelTurns + openTurns
}

// InProgressMove is a Move an actor has committed to, with the number of
// turns already spent on it.
type InProgressMove struct {
	Move  Move
	Turns uint64
}

// Actor is one searcher walking the network.
type Actor struct {
	position core.Name
	current  InProgressMove
	moving   bool
}

// Position returns the valve the actor stands at.
func (a Actor) Position() core.Name { return a.position }

// InProgress returns the actor's committed move, if it is mid-transit.
func (a Actor) InProgress() (InProgressMove, bool) { return a.current, a.moving }

// attach commits the actor to im, which may already be partly travelled.
func (a *Actor) attach(im InProgressMove) {
	a.current = im
	a.moving = true
}

// step spends one turn on the committed move. On the last turn the target
// opens and its flow joins the rate; otherwise the actor takes one hop.
func (a *Actor) step(net *network.Network, inner *stateInner) {
	if !a.moving {
		return
	}
	im := &a.current
	target := im.Move.Target

	if im.Turns+1 >= im.Move.Cost() {
		a.position = target
		a.current = InProgressMove{}
		a.moving = false

		inner.open.Insert(target, struct{}{})
		inner.pressurePerTurn += net.MustFlow(target)
		return
	}
	a.position = im.Move.Path[im.Turns].To
	im.Turns++
}

// stateInner is the part of a State that actors mutate.
type stateInner struct {
	pressurePerTurn uint64
	open            core.NameSet
}

// hooks are shared, read-only callbacks carried by every clone.
type hooks struct {
	onBranch   func(turn uint64)
	onTerminal func(pressure uint64)
}

// State is a snapshot of the search frontier. It is a value: assigning a
// State clones it, and the clone shares only the read-only Network.
type State struct {
	net      *network.Network
	hooks    *hooks
	maxTurns uint64
	turn     uint64
	pressure uint64
	inner    stateInner

	// 0 is the only driven actor
	actors [NumActors]Actor
}

// NewState returns the initial state: turn 0, nothing open, every actor idle
// at the start valve.
// Returns ErrNetworkNil, ErrOptionViolation, or network.ErrValveNotFound for
// a start with no record.
func NewState(net *network.Network, opts ...Option) (State, error) {
	o, err := buildOptions(net, opts)
	if err != nil {
		return State{}, err
	}

	return newState(net, o), nil
}

func newState(net *network.Network, o Options) State {
	s := State{
		net:      net,
		maxTurns: o.MaxTurns,
	}
	if o.OnBranch != nil || o.OnTerminal != nil {
		s.hooks = &hooks{onBranch: o.OnBranch, onTerminal: o.OnTerminal}
	}
	for i := range s.actors {
		s.actors[i].position = o.Start
	}

	return s
}

// Pressure returns the cumulative pressure released so far.
func (s State) Pressure() uint64 { return s.pressure }

// PressurePerTurn returns the current release rate.
func (s State) PressurePerTurn() uint64 { return s.inner.pressurePerTurn }

// Turn returns the number of turns consumed.
func (s State) Turn() uint64 { return s.turn }

// MaxTurns returns the turn budget.
func (s State) MaxTurns() uint64 { return s.maxTurns }

// TurnsLeft returns MaxTurns - Turn.
func (s State) TurnsLeft() uint64 { return s.maxTurns - s.turn }

// Actor returns actor i.
func (s State) Actor(i int) Actor { return s.actors[i] }

// IsOpen reports whether name has been opened.
func (s State) IsOpen(name core.Name) bool { return s.inner.open.Contains(name) }

// Opened returns the opened valves in name order.
func (s State) Opened() []core.Name { return s.inner.open.Keys() }

// advance accrues one turn of pressure and reports whether turns remain.
func (s *State) advance() bool {
	s.pressure += s.inner.pressurePerTurn

	s.turn++
	if s.turn >= s.maxTurns {
		if s.hooks != nil && s.hooks.onTerminal != nil {
			s.hooks.onTerminal(s.pressure)
		}
		return false
	}

	return true
}

// moves lists every unopened valve reachable from position.
func (s *State) moves(position core.Name) []Move {
	conns := s.net.MustConnections(position)
	mvs := make([]Move, 0, conns.Len())
	for name, c := range conns.All() {
		if s.inner.open.Contains(name) {
			continue
		}
		mvs = append(mvs, Move{Target: name, Path: c.Path})
	}

	return mvs
}

// candidates returns what actor i may do this turn: continue its committed
// move, or start any unopened move that finishes within the budget.
// A committed move is taken off the actor; branch hands it back.
func (s *State) candidates(i int) []InProgressMove {
	a := &s.actors[i]
	if a.moving {
		im := a.current
		a.current, a.moving = InProgressMove{}, false
		return []InProgressMove{im}
	}

	left := s.TurnsLeft()
	var out []InProgressMove
	for _, mv := range s.moves(a.position) {
		if mv.Cost() <= left {
			out = append(out, InProgressMove{Move: mv})
		}
	}

	return out
}

// branch clones s, hands im to actor i and steps that actor once.
func (s *State) branch(i int, im InProgressMove) State {
	next := *s
	a := &next.actors[i]
	a.attach(im)
	a.step(next.net, &next.inner)

	if s.hooks != nil && s.hooks.onBranch != nil {
		s.hooks.onBranch(s.turn)
	}

	return next
}
