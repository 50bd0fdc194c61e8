package titer

import "math"

// Titers are recorded on a log2 scale, so a four-fold rise is a
// difference of log2(4) = 2.
const FourFoldRise = 2.0

// ReferenceTiter is the protective-threshold reference line drawn on
// every chart, on the log2 scale.
var ReferenceTiter = math.Log2(40)

// DefaultSubjectColumn names the subject identifier column when the
// caller does not override it.
const DefaultSubjectColumn = "SubjectID"

// DefaultPalette is the default fill palette (ColorBrewer Paired),
// enough for four strains at two conditions each.
var DefaultPalette = []string{
	"#A6CEE3", "#1F78B4", "#B2DF8A", "#33A02C",
	"#FB9A99", "#E31A1C", "#FDBF6F", "#FF7F00",
}

// Outline colors encoding the four-fold-rise flag on each bar. The
// outline legend is always hidden; the encoding is intentional but
// unlabeled.
const (
	RiseOutline = "#D7191C" // fourFC true
	FlatOutline = "#404040" // fourFC false
)

// Options configures one run of the plotting pipeline.
type Options struct {
	// SubjectCol names the subject identifier column. It must exist in
	// every input table.
	SubjectCol string `json:"subject_col"`

	// Cols is a display-column layout hint. It is passed through to
	// the layout collaborator unmodified and unvalidated.
	Cols int `json:"cols"`

	// GroupVar optionally names a categorical column to partition and
	// facet by. Empty means a single ungrouped chart.
	GroupVar string `json:"group_var,omitempty"`

	// GroupLevels optionally declares the categorical levels of
	// GroupVar, in display order. Declared levels with no matching
	// rows still get a placeholder chart so the layout keeps its
	// slot. When empty, levels are taken from the data in order of
	// first appearance.
	GroupLevels []string `json:"group_levels,omitempty"`

	// Colors is the fill palette. It must hold at least two entries
	// per input table (one per condition).
	Colors []string `json:"colors"`
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.SubjectCol == "" {
		o.SubjectCol = DefaultSubjectColumn
	}
	if o.Cols == 0 {
		o.Cols = 1
	}
	if len(o.Colors) == 0 {
		o.Colors = DefaultPalette
	}
	return o
}
