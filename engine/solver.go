package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/informatter/text-tetris-engine/grid"
	"github.com/informatter/text-tetris-engine/internal/monitoring"
	"github.com/informatter/text-tetris-engine/polyomino"
)

// ErrInvalidDimensions is returned by New for grids without cells.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Options configures a Solver.
type Options struct {
	Rows    int
	Columns int
	// Verbose logs the grid after every token.
	Verbose bool
}

// DefaultOptions returns the options of a quiet 10x10 solver.
func DefaultOptions() Options {
	return Options{Rows: 10, Columns: 10}
}

// Solver drops shapes into a grid one token at a time and reports the
// height of the resulting stack.
type Solver struct {
	options   Options
	grid      *grid.Grid
	storage   *Storage
	registry  *polyomino.Registry
	scheduler *Scheduler

	placement *PlacementSystem
	lineClear *LineClearSystem
	gravity   *GravitySystem
	trace     *TraceSystem

	runID uuid.UUID
}

// New creates a solver with an empty grid.
func New(options Options) (*Solver, error) {
	if options.Rows <= 0 || options.Columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, options.Rows, options.Columns)
	}

	s := &Solver{
		options:  options,
		grid:     grid.New(options.Rows, options.Columns),
		storage:  NewStorage(),
		registry: polyomino.NewRegistry(),
		runID:    uuid.New(),
	}

	s.placement = &PlacementSystem{Registry: s.registry}
	s.lineClear = &LineClearSystem{}
	s.gravity = &GravitySystem{}

	s.scheduler = NewScheduler(s.grid, s.storage)
	s.scheduler.Register(s.placement)
	s.scheduler.Register(s.lineClear)
	s.scheduler.Register(s.gravity)

	if options.Verbose {
		s.trace = &TraceSystem{RunID: s.runID}
		s.scheduler.Register(s.trace)
	}

	return s, nil
}

// Solve parses a comma-separated sequence, drops every shape in order and
// returns the final height. A parse error leaves the grid untouched; a
// placement error stops the run with the grid as it was after the last
// successful token.
func (s *Solver) Solve(input string) (int, error) {
	tokens, err := ParseSequence(input, s.options.Columns)
	if err != nil {
		return 0, err
	}

	for _, token := range tokens {
		if err := s.Place(token); err != nil {
			return 0, err
		}
	}
	return s.Height(), nil
}

// Place drops one shape and resolves any rows it completes.
func (s *Solver) Place(token Token) error {
	if _, err := s.scheduler.Once(token); err != nil {
		monitoring.Logf("run %s: placing %s failed: %v", s.runID, token, err)
		return fmt.Errorf("place %s: %w", token, err)
	}
	return nil
}

// Height returns the number of rows between the floor and the highest
// occupied cell.
func (s *Solver) Height() int {
	return s.grid.Height()
}

// Reset empties the grid and starts a new run.
func (s *Solver) Reset() {
	s.grid.Reset()
	s.storage.Clear()
	s.scheduler.Reset()

	s.runID = uuid.New()
	if s.trace != nil {
		s.trace.RunID = s.runID
	}
}

// IsEmpty reports whether no shape has been placed since the last reset.
// Rows cleared down to nothing do not make the grid empty again.
func (s *Solver) IsEmpty() bool {
	return s.placement.Empty()
}

func (s *Solver) Grid() *grid.Grid {
	return s.grid
}

// Shapes returns the live shapes in drop order.
func (s *Solver) Shapes() []*polyomino.Shape {
	return s.storage.Shapes()
}

func (s *Solver) Options() Options {
	return s.options
}

func (s *Solver) RunID() uuid.UUID {
	return s.runID
}

// Stats returns the scheduler execution statistics.
func (s *Solver) Stats() *SchedulerStats {
	return s.scheduler.GetStats()
}

func (s *Solver) StorageStats() StorageStats {
	return s.storage.CollectStats()
}

// RowsCleared returns the number of rows cleared in the current run.
func (s *Solver) RowsCleared() int {
	return s.lineClear.RowsCleared
}

// Shifts returns how many times a shape fell after a clear in the current
// run.
func (s *Solver) Shifts() int {
	return s.gravity.Shifts
}

// Validate checks that every occupied cell is owned by exactly one live
// shape and that every live shape's cells are occupied by it.
func (s *Solver) Validate() error {
	owned := 0
	for shape := range s.storage.Iter() {
		if shape.Empty() {
			return fmt.Errorf("shape %s has no cells but is still live", shape)
		}
		for _, c := range shape.Body() {
			owner, ok := s.grid.Owner(c.Row, c.Col)
			if !ok {
				return fmt.Errorf("shape %s: cell %s is free", shape, c)
			}
			if owner != shape.ID() {
				return fmt.Errorf("shape %s: cell %s is owned by %d", shape, c, owner)
			}
			owned++
		}
	}

	if occupied := s.grid.OccupiedCount(); occupied != owned {
		return fmt.Errorf("%d cells occupied but %d owned by live shapes", occupied, owned)
	}
	return nil
}
