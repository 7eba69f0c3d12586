package grid

import (
	"fmt"
	"strings"

	"github.com/kamstrup/intmap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	Free     = 0.0
	Occupied = 1.0
)

// Owner identifies the shape that currently claims a cell.
type Owner uint32

// Grid is a fixed rows x columns occupancy matrix. Row 0 is the top of the
// grid and rows-1 is the floor.
//
// The occupancy matrix is the source of truth for collision and row-clear
// decisions; the owner index mirrors it so that every occupied cell can be
// traced back to exactly one shape. Both are updated together by Occupy,
// Release and ClearRow.
type Grid struct {
	rows    int
	columns int
	cells   *mat.Dense
	owners  *intmap.Map[int, Owner]
}

// New creates an empty grid. It panics if either dimension is not positive.
func New(rows, columns int) *Grid {
	if rows <= 0 || columns <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", rows, columns))
	}

	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   mat.NewDense(rows, columns, nil),
		owners:  intmap.New[int, Owner](rows * columns),
	}
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns in the grid.
func (g *Grid) Columns() int {
	return g.columns
}

// InBounds reports whether (row, column) addresses a cell of the grid.
func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.rows && column >= 0 && column < g.columns
}

// Occupied reports whether the cell is occupied. Out of range indices panic.
func (g *Grid) Occupied(row, column int) bool {
	return g.cells.At(row, column) == Occupied
}

// Owner returns the owner of an occupied cell.
func (g *Grid) Owner(row, column int) (Owner, bool) {
	g.mustBeInBounds(row, column)
	return g.owners.Get(g.index(row, column))
}

// Occupy marks a free cell as occupied by owner. Occupying an already
// occupied cell is an invariant violation and panics.
func (g *Grid) Occupy(row, column int, owner Owner) {
	if g.Occupied(row, column) {
		prev, _ := g.owners.Get(g.index(row, column))
		panic(fmt.Sprintf("grid: cell (%d,%d) already occupied by %d", row, column, prev))
	}

	g.cells.Set(row, column, Occupied)
	g.owners.Put(g.index(row, column), owner)
}

// Release frees a cell. Releasing a free cell is a no-op.
func (g *Grid) Release(row, column int) {
	g.cells.Set(row, column, Free)
	g.owners.Del(g.index(row, column))
}

// FilledRows returns the indices of every row whose cells are all occupied,
// in ascending order.
func (g *Grid) FilledRows() []int {
	var filled []int
	row := make([]float64, g.columns)
	for i := 0; i < g.rows; i++ {
		mat.Row(row, i, g.cells)
		if floats.Min(row) == Occupied {
			filled = append(filled, i)
		}
	}
	return filled
}

// ClearRow frees every cell of the row.
func (g *Grid) ClearRow(row int) {
	for j := 0; j < g.columns; j++ {
		g.Release(row, j)
	}
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	return int(mat.Sum(g.cells))
}

// Top returns the smallest row index holding an occupied cell in the column,
// or Rows() if the column is empty.
func (g *Grid) Top(column int) int {
	col := mat.Col(nil, column, g.cells)
	for i, v := range col {
		if v == Occupied {
			return i
		}
	}
	return g.rows
}

// Height returns the height of the stack: rows minus the highest occupied
// row across all columns. An empty grid has height 0.
func (g *Grid) Height() int {
	top := g.rows
	for j := 0; j < g.columns; j++ {
		top = min(top, g.Top(j))
	}
	return g.rows - top
}

// Reset frees every cell.
func (g *Grid) Reset() {
	g.cells.Zero()
	g.owners.Clear()
}

// Matrix exposes the occupancy matrix for read-only consumers such as
// renderers. Callers must not mutate it.
func (g *Grid) Matrix() mat.Matrix {
	return g.cells
}

// Snapshot returns a copy of the occupancy state, one string per row, using
// '#' for occupied and '.' for free cells.
func (g *Grid) Snapshot() []string {
	lines := make([]string, g.rows)
	var b strings.Builder
	for i := 0; i < g.rows; i++ {
		b.Reset()
		for j := 0; j < g.columns; j++ {
			if g.Occupied(i, j) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		lines[i] = b.String()
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Snapshot(), "\n")
}

func (g *Grid) index(row, column int) int {
	return row*g.columns + column
}

func (g *Grid) mustBeInBounds(row, column int) {
	if !g.InBounds(row, column) {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of bounds %dx%d", row, column, g.rows, g.columns))
	}
}
