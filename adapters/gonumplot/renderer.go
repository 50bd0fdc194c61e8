// Package gonumplot renders chart specs with gonum.org/v1/plot and
// arranges them into multi-panel PNG figures.
package gonumplot

import (
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"serovis/domain/titer"
	"serovis/ports"
)

// Renderer implements ports.Renderer on gonum/plot grouped bar charts.
type Renderer struct {
	// BarWidth is the width of a single bar.
	BarWidth vg.Length
}

// NewRenderer creates a renderer with default geometry.
func NewRenderer() *Renderer {
	return &Renderer{BarWidth: vg.Points(9)}
}

// Render builds one grouped bar chart from a spec. Bars are dodged by
// fill category, outlined by the four-fold-rise flag, clipped to the
// spec's shared y range, and labeled on a linear titer scale. A
// single-level facet renders as the panel title strip.
func (r *Renderer) Render(ctx context.Context, spec titer.ChartSpec) (ports.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := plot.New()
	if spec.FacetVar != "" {
		p.Title.Text = fmt.Sprintf("%s: %s", spec.FacetVar, spec.Key)
	}
	p.X.Label.Text = spec.XAxisTitle
	p.Y.Label.Text = "titer"
	p.Y.Tick.Marker = pow2Ticker{}
	p.Legend.Top = true

	if !spec.Blank {
		if err := r.addBars(p, spec); err != nil {
			return nil, err
		}
		if err := addRefLine(p, spec); err != nil {
			return nil, err
		}
		p.NominalX(spec.Subjects...)
	}

	// Clip last: Add grows the axis range from each plotter's data
	// range (bar charts reach down to 0), which would defeat the
	// shared y clipping across panels.
	p.Y.Min = spec.YMin
	p.Y.Max = spec.YMax

	return p, nil
}

// flagClass partitions bars by outline encoding.
type flagClass int

const (
	flagFlat    flagClass = iota // fourFC false
	flagRise                     // fourFC true
	flagUnknown                  // fold-change missing
)

func classOf(f *bool) flagClass {
	switch {
	case f == nil:
		return flagUnknown
	case *f:
		return flagRise
	}
	return flagFlat
}

// addBars adds one bar series per (fill category, flag class). All
// series of a fill category share the same dodge offset and fill
// color; the flag classes differ only in outline. The outline carries
// no legend entry on purpose.
func (r *Renderer) addBars(p *plot.Plot, spec titer.ChartSpec) error {
	index := make(map[string]int, len(spec.Subjects))
	for i, s := range spec.Subjects {
		index[s] = i
	}

	n := len(spec.Fills)
	inLegend := make(map[string]bool, n)
	for fi, fill := range spec.Fills {
		fillColor, err := parseHex(spec.FillColors[fi])
		if err != nil {
			return err
		}
		offset := vg.Length(float64(fi)-float64(n-1)/2) * r.BarWidth

		for _, class := range []flagClass{flagFlat, flagRise, flagUnknown} {
			values := make(plotter.Values, len(spec.Subjects))
			any := false
			for _, row := range spec.Rows {
				if row.Condition != fill.Condition || row.Strain != fill.Strain {
					continue
				}
				if classOf(row.FourFC) != class || row.Titer == nil {
					continue
				}
				values[index[row.Subject]] = *row.Titer
				any = true
			}
			if !any {
				continue
			}

			bars, err := plotter.NewBarChart(values, r.BarWidth)
			if err != nil {
				return fmt.Errorf("bar chart for %s: %w", fill.Label(), err)
			}
			bars.Color = fillColor
			bars.Offset = offset
			bars.LineStyle = outlineStyle(class, spec)
			p.Add(bars)

			// One legend entry per fill category, never per flag
			// class: the outline encoding stays unlabeled.
			if !inLegend[fill.Label()] {
				inLegend[fill.Label()] = true
				p.Legend.Add(fill.Label(), bars)
			}
		}
	}
	return nil
}

func outlineStyle(class flagClass, spec titer.ChartSpec) draw.LineStyle {
	style := draw.LineStyle{Width: vg.Points(1.25)}
	switch class {
	case flagRise:
		c, err := parseHex(spec.RiseOutline)
		if err == nil {
			style.Color = c
		}
	case flagFlat:
		c, err := parseHex(spec.FlatOutline)
		if err == nil {
			style.Color = c
		}
	case flagUnknown:
		// Missing fold-change: no flag claim, no outline.
		style.Width = 0
		style.Color = color.Transparent
	}
	return style
}

// addRefLine draws the horizontal protective-threshold line across
// the nominal x range.
func addRefLine(p *plot.Plot, spec titer.ChartSpec) error {
	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: spec.RefLineY},
		{X: float64(len(spec.Subjects)) - 0.5, Y: spec.RefLineY},
	})
	if err != nil {
		return fmt.Errorf("reference line: %w", err)
	}
	line.LineStyle.Color = color.Gray{Y: 0x60}
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	return nil
}
