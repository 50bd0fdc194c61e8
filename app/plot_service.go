// Package app orchestrates the titer pipeline against its rendering,
// layout and archive collaborators.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"serovis/domain/titer"
	"serovis/internal"
	"serovis/ports"
)

// PlotService runs the pipeline and drives the collaborators: every
// partition chart is rendered, the charts are composed into one
// figure, and the run is optionally archived.
type PlotService struct {
	renderer ports.Renderer
	layout   ports.Layout
	archive  ports.RunArchive // nil disables archiving
	log      *internal.Logger
}

// NewPlotService wires a plot service. archive may be nil.
func NewPlotService(renderer ports.Renderer, layout ports.Layout, archive ports.RunArchive, log *internal.Logger) *PlotService {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &PlotService{renderer: renderer, layout: layout, archive: archive, log: log}
}

// Run executes the full flow for one input collection and writes the
// composed figure to figurePath. The returned result carries the
// ordered chart-spec mapping and all pipeline intermediates.
//
// The core transform is pure and fails fast; only rendering fans out,
// one goroutine per partition chart.
func (s *PlotService) Run(ctx context.Context, tables titer.StrainTables, opts titer.Options, figurePath string) (*titer.Result, error) {
	res, err := titer.Run(tables, opts)
	if err != nil {
		return nil, err
	}
	s.log.Info("pipeline complete: %d strains, %d plot rows, %d charts",
		len(res.Plot.Strains), len(res.Plot.Rows), len(res.Specs.Keys))

	charts := make([]ports.Chart, len(res.Specs.Keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range res.Specs.Keys {
		i, key := i, key
		g.Go(func() error {
			chart, err := s.renderer.Render(gctx, res.Specs.Specs[key])
			if err != nil {
				return fmt.Errorf("render chart %q: %w", key, err)
			}
			charts[i] = chart
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.layout.Compose(ctx, charts, res.Specs.Cols, figurePath); err != nil {
		return nil, fmt.Errorf("compose figure: %w", err)
	}
	s.log.Info("figure written to %s", figurePath)

	if s.archive != nil {
		rec := titer.NewRunRecord(tables, opts, res.Specs)
		if err := s.archive.SaveRun(ctx, rec, res.Specs); err != nil {
			// Archiving is best effort; the figure already exists.
			s.log.Warn("failed to archive run %s: %v", rec.ID, err)
		} else {
			s.log.Debug("archived run %s", rec.ID)
		}
	}

	return res, nil
}
