package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/informatter/text-tetris-engine/grid"
	"github.com/informatter/text-tetris-engine/internal/monitoring"
	"github.com/informatter/text-tetris-engine/polyomino"
)

// PlacementSystem creates the token's shape and drops it into its column.
//
// The very first shape of a run lands on the floor. Every later shape is
// probed top-down and anchored at the first row where it touches something;
// if it never does it lands on the floor.
type PlacementSystem struct {
	Registry *polyomino.Registry

	settled bool
}

func (s *PlacementSystem) Execute(frame *Frame) error {
	shape, err := s.Registry.Create(frame.Token.Code)
	if err != nil {
		return err
	}

	g := frame.Grid
	column := frame.Token.Column
	if column < 0 || column+shape.Kind().Width() > g.Columns() {
		return fmt.Errorf("%w: %s at column %d spans %d columns on a %d-wide grid",
			polyomino.ErrOutOfBounds, shape.Kind(), column, shape.Kind().Width(), g.Columns())
	}

	anchor := polyomino.Cell{Row: s.restingRow(g, shape, column), Col: column}
	if err := shape.Add(g, anchor); err != nil {
		return err
	}

	s.settled = true
	frame.Storage.Spawn(shape)
	frame.Placed = shape
	return nil
}

func (s *PlacementSystem) restingRow(g *grid.Grid, shape *polyomino.Shape, column int) int {
	floor := g.Rows() - 1
	if !s.settled {
		return floor
	}

	for row := 0; row < floor; row++ {
		if shape.CheckCollision(g, row, column) {
			return row
		}
	}
	return floor
}

// Empty reports whether no shape has been placed since the last reset.
func (s *PlacementSystem) Empty() bool {
	return !s.settled
}

func (s *PlacementSystem) Reset() {
	s.settled = false
}

// LineClearSystem removes every filled row. Each live shape drops its cells
// on those rows; shapes left without cells are queued for deletion. The
// cleared rows are only counted once the frame completes.
type LineClearSystem struct {
	RowsCleared int
}

func (s *LineClearSystem) Execute(frame *Frame) error {
	filled := frame.Grid.FilledRows()
	if len(filled) == 0 {
		return nil
	}

	for _, row := range filled {
		for shape := range frame.Storage.Iter() {
			shape.Remove(row)
		}
	}

	for shape := range frame.Storage.Iter() {
		if shape.Empty() {
			frame.Commands.Delete(shape.ID())
		}
	}

	for _, row := range filled {
		frame.Grid.ClearRow(row)
	}

	frame.Cleared = filled
	frame.Commands.Defer(func() {
		s.RowsCleared += len(filled)
	})
	return nil
}

func (s *LineClearSystem) Reset() {
	s.RowsCleared = 0
}

// GravitySystem lets the remaining shapes fall after rows were cleared.
// Shapes are shifted one at a time in drop order against the current grid,
// so a shape that falls first can stop or free the shapes after it.
type GravitySystem struct {
	// Shifts counts the shapes that fell.
	Shifts int
}

func (s *GravitySystem) Execute(frame *Frame) error {
	if len(frame.Cleared) == 0 {
		return nil
	}

	for shape := range frame.Storage.Iter() {
		if shape.Empty() {
			continue
		}
		if shape.ShiftDown(frame.Grid) > 0 {
			s.Shifts++
		}
	}
	return nil
}

func (s *GravitySystem) Reset() {
	s.Shifts = 0
}

// TraceSystem logs the grid after every step.
type TraceSystem struct {
	RunID uuid.UUID
}

func (s *TraceSystem) Execute(frame *Frame) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s step %d: %s", s.RunID, frame.Step, frame.Token)
	if frame.Placed != nil {
		fmt.Fprintf(&b, " placed %v", frame.Placed.Body())
	}
	if len(frame.Cleared) > 0 {
		fmt.Fprintf(&b, " cleared rows %v", frame.Cleared)
	}
	if n := frame.Commands.Pending(); n > 0 {
		fmt.Fprintf(&b, " (%d pending)", n)
	}
	fmt.Fprintf(&b, " height %d\n%s", frame.Grid.Height(), frame.Grid)

	monitoring.Logf("%s", b.String())
	return nil
}
