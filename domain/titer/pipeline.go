// Package titer reshapes paired before/after antibody titer tables
// and builds grouped bar chart specifications from them.
//
// The pipeline is a pure, single-pass transform: a named collection of
// per-strain tables is melted to long format, the four-fold-rise flag
// is computed from the fold-change rows and joined back on, and the
// result is partitioned into one chart spec per group level. Nothing
// here renders; rendering and layout are collaborator concerns.
package titer

// Result carries every intermediate of one pipeline run, for callers
// that need more than the chart specs (summaries, archiving).
type Result struct {
	Long  *LongTable
	Flags FlagTable
	Plot  *PlotTable
	Specs *SpecSet
}

// Run executes the full pipeline: reshape, flag, join, partition.
// It either returns the complete result or fails fast with no partial
// output.
func Run(tables StrainTables, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	long, err := Reshape(tables, opts.SubjectCol)
	if err != nil {
		return nil, err
	}

	flags := FourFoldFlags(long)
	plot := BuildPlotTable(long, flags)

	specs, err := BuildChartSpecs(plot, opts)
	if err != nil {
		return nil, err
	}

	return &Result{Long: long, Flags: flags, Plot: plot, Specs: specs}, nil
}

// BuildCharts is the convenience entry point when only the ordered
// chart-spec mapping is needed.
func BuildCharts(tables StrainTables, opts Options) (*SpecSet, error) {
	res, err := Run(tables, opts)
	if err != nil {
		return nil, err
	}
	return res.Specs, nil
}
