package model

import (
	"slices"

	"github.com/pkg/errors"
)

// Option configures a Simulation
type Option func(*Simulation)

// WithParallelStep computes generations with Grid.NextGenerationParallel.
// A workers value <= 0 uses one worker per CPU.
func WithParallelStep(workers int) Option {
	return func(s *Simulation) {
		s.parallel = true
		s.workers = workers
	}
}

// WithListener subscribes fn to every state change from construction on
func WithListener(fn func(State)) Option {
	return func(s *Simulation) {
		s.Subscribe(fn)
	}
}

// Simulation owns the state of a game and applies commands to it.
//
// Every command builds a complete new State and swaps it in, then notifies
// listeners, so a snapshot handed out is never seen half-updated.
// A Simulation is not safe for concurrent use; callers serialize commands.
type Simulation struct {
	rows, cols int
	state      State

	parallel bool
	workers  int

	listeners  []listener
	nextID     int
	publishing bool
	superseded bool
}

type listener struct {
	id int
	fn func(State)
}

// NewSimulation creates a paused simulation with an empty board
func NewSimulation(rows, cols int, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		rows: rows,
		cols: cols,
	}
	initial, err := s.initialState()
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] failed to create board")
	}
	s.state = initial
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulation) initialState() (State, error) {
	grid, err := NewEmptyGrid(s.rows, s.cols)
	if err != nil {
		return State{}, err
	}
	return State{Grid: grid, IsPaused: true}, nil
}

// State returns the current snapshot
func (s *Simulation) State() State {
	return s.state
}

// Subscribe registers fn to be called with every new snapshot, and returns a func that removes it.
// Listeners run in subscription order and may issue commands themselves.
func (s *Simulation) Subscribe(fn func(State)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// publish installs next and notifies listeners. A command issued from a
// listener only swaps the state; the running delivery then stops and starts
// over with the newest snapshot, so every listener ends on the current state.
func (s *Simulation) publish(next State) {
	s.state = next
	if s.publishing {
		s.superseded = true
		return
	}
	s.publishing = true
	defer func() { s.publishing = false }()

	for {
		s.superseded = false
		current := s.state
		for _, l := range slices.Clone(s.listeners) {
			l.fn(current)
			if s.superseded {
				break
			}
		}
		if !s.superseded {
			return
		}
	}
}

// Reset clears the board, the generation counter and the flags
func (s *Simulation) Reset() {
	// dimensions were validated in NewSimulation
	initial, _ := s.initialState()
	s.publish(initial)
}

// ToggleCell flips the cell at (row, col)
func (s *Simulation) ToggleCell(row, col int) error {
	alive, err := s.state.Grid.Get(row, col)
	if err != nil {
		return err
	}
	return s.setCell(row, col, !alive)
}

// ActivateCell makes the cell at (row, col) alive
func (s *Simulation) ActivateCell(row, col int) error {
	return s.setCell(row, col, true)
}

// DeactivateCell makes the cell at (row, col) dead
func (s *Simulation) DeactivateCell(row, col int) error {
	return s.setCell(row, col, false)
}

func (s *Simulation) setCell(row, col int, alive bool) error {
	grid, err := s.state.Grid.WithCell(row, col, alive)
	if err != nil {
		return err
	}
	next := s.state
	next.Grid = grid
	s.publish(next)
	return nil
}

// Place activates the live cells of p with its top-left corner at (row, col).
// Nothing changes unless the whole pattern fits on the board.
func (s *Simulation) Place(p Pattern, row, col int) error {
	grid := s.state.Grid
	for _, cell := range p.Cells {
		if !grid.InBounds(row+cell.Row, col+cell.Col) {
			return errors.Wrapf(ErrOutOfBounds, "pattern %q at (%d,%d)", p.Name, row, col)
		}
	}
	for _, cell := range p.Cells {
		var err error
		if grid, err = grid.WithCell(row+cell.Row, col+cell.Col, true); err != nil {
			return err
		}
	}
	next := s.state
	next.Grid = grid
	s.publish(next)
	return nil
}

// SetPaused pauses or resumes the simulation. The still life flag is kept.
func (s *Simulation) SetPaused(paused bool) {
	next := s.state
	next.IsPaused = paused
	s.publish(next)
}

// TogglePaused flips between paused and running
func (s *Simulation) TogglePaused() {
	s.SetPaused(!s.state.IsPaused)
}

// AdvanceGeneration applies the rules to every cell and moves to the next generation.
// The board is a still life when the new grid is populated and equal to the previous one.
func (s *Simulation) AdvanceGeneration() {
	prev := s.state.Grid
	var grid *Grid
	if s.parallel {
		grid = prev.NextGenerationParallel(s.workers)
	} else {
		grid = prev.NextGeneration()
	}

	next := s.state
	next.Grid = grid
	next.Generation++
	next.IsStillLife = grid.CountLivingCells() > 0 && grid.Equals(prev)
	s.publish(next)
}

// Step pauses the simulation and advances exactly one generation
func (s *Simulation) Step() {
	// listeners only see the stepped state
	s.state.IsPaused = true
	s.AdvanceGeneration()
}
