package polyomino

import (
	"errors"
	"fmt"
	"slices"

	"github.com/informatter/text-tetris-engine/grid"
)

var (
	// ErrOutOfBounds is returned when a shape would be placed outside the grid.
	ErrOutOfBounds = errors.New("shape out of bounds")
	// ErrOverlap is returned when a shape would be placed on occupied cells.
	ErrOverlap = errors.New("shape overlaps occupied cells")
)

// Cell is a (row, column) grid location.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Shape is a placed polyomino. Its body lists the grid cells it currently
// claims; the body shrinks when rows are cleared and translates when the
// shape falls. A shape with a non-contiguous body after a partial clear is
// still a single shape.
type Shape struct {
	id             grid.Owner
	kind           Kind
	body           []Cell
	lastCleared    int
	hasLastCleared bool
}

// New creates an unplaced shape of the given kind.
func New(id grid.Owner, kind Kind) *Shape {
	if !kind.Valid() {
		panic("polyomino: unknown kind " + kind.String())
	}
	return &Shape{id: id, kind: kind}
}

// ID returns the owner id the shape writes into the grid.
func (s *Shape) ID() grid.Owner {
	return s.id
}

// Kind returns the variant of the shape.
func (s *Shape) Kind() Kind {
	return s.kind
}

// Body returns a copy of the cells the shape currently occupies.
func (s *Shape) Body() []Cell {
	return slices.Clone(s.body)
}

// Empty reports whether every cell of the shape has been cleared.
func (s *Shape) Empty() bool {
	return len(s.body) == 0
}

// LastClearedRow returns the most recent cleared row that removed part of
// the shape.
func (s *Shape) LastClearedRow() (int, bool) {
	return s.lastCleared, s.hasLastCleared
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s#%d%v", s.kind, s.id, s.body)
}

// Cells computes the body the shape would occupy for the given anchor on g,
// without touching the grid.
func (s *Shape) Cells(g *grid.Grid, anchor Cell) []Cell {
	geom := s.kind.geometry()
	if geom.liftAtFloor && anchor.Row == g.Rows()-1 {
		anchor.Row--
	}

	cells := make([]Cell, 0, len(geom.body))
	for _, off := range geom.body {
		cells = append(cells, Cell{Row: anchor.Row + off.Row, Col: anchor.Col + off.Col})
	}
	return cells
}

// Add materializes the shape at the anchor: its body is computed from the
// variant's offsets and every body cell is marked occupied. All target cells
// are validated before the grid is touched, so a failed Add leaves both the
// grid and the shape unchanged.
func (s *Shape) Add(g *grid.Grid, anchor Cell) error {
	if len(s.body) != 0 {
		return fmt.Errorf("%s: already placed", s)
	}

	cells := s.Cells(g, anchor)
	for _, c := range cells {
		if !g.InBounds(c.Row, c.Col) {
			return fmt.Errorf("%w: %s at %s needs cell %s on a %dx%d grid",
				ErrOutOfBounds, s.kind, anchor, c, g.Rows(), g.Columns())
		}
	}
	for _, c := range cells {
		if g.Occupied(c.Row, c.Col) {
			return fmt.Errorf("%w: %s at %s needs cell %s", ErrOverlap, s.kind, anchor, c)
		}
	}

	for _, c := range cells {
		g.Occupy(c.Row, c.Col, s.id)
	}
	s.body = cells
	return nil
}

// CheckCollision reports whether the shape, anchored at (row, column), rests
// on something: a cell directly below one of its legs is occupied or is the
// floor. Leg rows above the top edge are ignored. The column span must fit
// in the grid.
func (s *Shape) CheckCollision(g *grid.Grid, row, column int) bool {
	for _, leg := range s.kind.geometry().legs {
		below := row + leg.Row + 1
		if below < 0 {
			continue
		}
		if below >= g.Rows() {
			return true
		}
		if g.Occupied(below, column+leg.Col) {
			return true
		}
	}
	return false
}

// Remove drops every body cell on the given row. The grid is left alone;
// the caller clears the row. It returns the number of cells removed.
func (s *Shape) Remove(row int) int {
	kept := make([]Cell, 0, len(s.body))
	for _, c := range s.body {
		if c.Row != row {
			kept = append(kept, c)
		}
	}

	removed := len(s.body) - len(kept)
	s.body = kept
	if removed > 0 {
		s.lastCleared = row
		s.hasLastCleared = true
	}
	return removed
}

// Colliders returns the bottom-most body cell of every column the shape
// spans, ordered by column.
func (s *Shape) Colliders() []Cell {
	bottom := make(map[int]int, len(s.body))
	for _, c := range s.body {
		if r, ok := bottom[c.Col]; !ok || c.Row > r {
			bottom[c.Col] = c.Row
		}
	}

	colliders := make([]Cell, 0, len(bottom))
	for col, row := range bottom {
		colliders = append(colliders, Cell{Row: row, Col: col})
	}
	slices.SortFunc(colliders, func(a, b Cell) int { return a.Col - b.Col })
	return colliders
}

// ShiftDown lets a shape that lost cells to a cleared row fall into the gap.
// The fall distance is the smallest run of free cells below any collider, so
// the shape only falls as far as its most constrained column allows. Shapes
// that were never split, or whose colliders all sit below the last cleared
// row, do not move. It returns the distance fallen.
func (s *Shape) ShiftDown(g *grid.Grid) int {
	if !s.hasLastCleared || len(s.body) == 0 {
		return 0
	}

	colliders := s.Colliders()
	lowest := g.Rows()
	for _, c := range colliders {
		lowest = min(lowest, c.Row)
	}
	if lowest > s.lastCleared {
		return 0
	}

	shift := g.Rows()
	for _, c := range colliders {
		shift = min(shift, freeBelow(g, c))
	}
	if shift == 0 {
		return 0
	}

	for _, c := range s.body {
		g.Release(c.Row, c.Col)
	}
	for i := range s.body {
		s.body[i].Row += shift
	}
	for _, c := range s.body {
		g.Occupy(c.Row, c.Col, s.id)
	}
	return shift
}

// freeBelow counts the free cells between c and the next occupied cell or
// the floor.
func freeBelow(g *grid.Grid, c Cell) int {
	n := 0
	for row := c.Row + 1; row < g.Rows(); row++ {
		if g.Occupied(row, c.Col) {
			break
		}
		n++
	}
	return n
}
