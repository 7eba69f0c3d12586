package render

import (
	"fmt"
	"path/filepath"

	"github.com/informatter/text-tetris-engine/grid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// cellSize is the rendered edge length of one grid cell.
const cellSize = 0.4 * vg.Inch

// occupancy adapts an occupancy matrix to plotter.GridXYZ. Plot rows grow
// upward, so plot row 0 is the floor of the grid.
type occupancy struct {
	m mat.Matrix
}

func (o occupancy) Dims() (c, r int) {
	rows, cols := o.m.Dims()
	return cols, rows
}

func (o occupancy) Z(c, r int) float64 {
	rows, _ := o.m.Dims()
	return o.m.At(rows-1-r, c)
}

func (o occupancy) X(c int) float64 {
	return float64(c)
}

func (o occupancy) Y(r int) float64 {
	return float64(r)
}

// HeatMap builds a plot of the grid with occupied cells drawn hot and free
// cells drawn cold.
func HeatMap(g *grid.Grid, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Height"

	h := plotter.NewHeatMap(occupancy{m: g.Matrix()}, palette.Heat(2, 1))
	h.Min = grid.Free
	h.Max = grid.Occupied
	p.Add(h)

	p.X.Min = -0.5
	p.X.Max = float64(g.Columns()) - 0.5
	p.Y.Min = -0.5
	p.Y.Max = float64(g.Rows()) - 0.5
	return p
}

// SavePNG renders the grid to a PNG file at path.
func SavePNG(g *grid.Grid, title, path string) error {
	if ext := filepath.Ext(path); ext != ".png" {
		return fmt.Errorf("render: output must have .png extension, got %q", ext)
	}

	p := HeatMap(g, title)
	width := vg.Length(g.Columns())*cellSize + vg.Inch
	height := vg.Length(g.Rows())*cellSize + vg.Inch
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save grid plot: %w", err)
	}
	return nil
}
