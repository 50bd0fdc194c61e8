package gonumplot

import (
	"context"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"serovis/ports"
)

// GridLayout implements ports.Layout: it tiles rendered charts into a
// grid with the requested column count and writes a single PNG.
type GridLayout struct {
	// PanelWidth and PanelHeight size one grid cell.
	PanelWidth  vg.Length
	PanelHeight vg.Length
}

// NewGridLayout creates a layout with default panel geometry.
func NewGridLayout() *GridLayout {
	return &GridLayout{
		PanelWidth:  vg.Points(520),
		PanelHeight: vg.Points(220),
	}
}

// Compose arranges charts row-major into cols columns and writes the
// composed figure to path. The column count is taken as given, per
// the caller's layout hint.
func (l *GridLayout) Compose(ctx context.Context, charts []ports.Chart, cols int, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(charts) == 0 {
		return fmt.Errorf("no charts to compose")
	}
	if cols < 1 {
		cols = 1
	}
	rows := (len(charts) + cols - 1) / cols

	grid := make([][]*plot.Plot, rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, cols)
	}
	for i, c := range charts {
		p, ok := c.(*plot.Plot)
		if !ok {
			return fmt.Errorf("chart %d: unexpected type %T", i, c)
		}
		grid[i/cols][i%cols] = p
	}

	img := vgimg.New(l.PanelWidth*vg.Length(cols), l.PanelHeight*vg.Length(rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Points(6),
		PadY: vg.Points(6),
	}

	canvases := plot.Align(grid, tiles, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c] != nil {
				grid[r][c].Draw(canvases[r][c])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}
