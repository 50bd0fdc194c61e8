package titer

import (
	"strings"

	"serovis/domain/core"
)

// UngroupedKey is the single partition key used when no grouping
// variable is configured.
const UngroupedKey = "all"

// FillKey is one fill category: the (Condition, Strain) interaction
// that bars are dodged and colored by.
type FillKey struct {
	Condition Condition `json:"condition"`
	Strain    string    `json:"strain"`
}

// Label renders the legend entry for a fill category.
func (k FillKey) Label() string {
	return string(k.Condition) + "." + k.Strain
}

// ChartSpec is a renderer-neutral description of one grouped bar
// chart: data, encodings, scales and theme directives. It carries no
// handle to any rendering backend.
type ChartSpec struct {
	// Key is the partition level this chart covers.
	Key string `json:"key"`
	// Blank marks a placeholder spec for a partition level with no
	// rows. Blank charts keep their layout slot but draw nothing.
	Blank bool `json:"blank,omitempty"`

	Rows     []PlotRow `json:"rows"`
	Subjects []string  `json:"subjects"`

	// XColumn names the subject column mapped to x. XAxisTitle is
	// empty on every chart but the last partition's, which keeps the
	// axis title for the stacked layout.
	XColumn    string `json:"x_column"`
	XAxisTitle string `json:"x_axis_title,omitempty"`

	// Fills and FillColors are parallel: the ordered fill categories
	// and their palette colors.
	Fills      []FillKey `json:"fills"`
	FillColors []string  `json:"fill_colors"`

	// Bar outline colors encoding the four-fold-rise flag. The
	// outline legend is always suppressed.
	RiseOutline string `json:"rise_outline"`
	FlatOutline string `json:"flat_outline"`

	// RefLineY is the horizontal reference line, on the log2 scale.
	RefLineY float64 `json:"ref_line_y"`

	// YMin and YMax clip the y axis; identical across all partitions
	// of a run. Y tick labels are 2^tick, undoing the log2 transform.
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`

	// FacetVar facets the chart by the grouping variable when set,
	// with independent x scales per facet and empty facets dropped.
	FacetVar        string `json:"facet_var,omitempty"`
	FreeX           bool   `json:"free_x,omitempty"`
	DropEmptyFacets bool   `json:"drop_empty_facets,omitempty"`
}

// SpecSet is the ordered mapping from partition key to chart spec.
type SpecSet struct {
	Keys  []string             `json:"keys"`
	Specs map[string]ChartSpec `json:"specs"`
	// Cols is the caller's display-column hint, forwarded untouched to
	// the layout collaborator.
	Cols int `json:"cols"`
}

// BuildChartSpecs partitions the plotting table by the optional
// grouping variable and builds one chart spec per level, in level
// order. With no grouping variable there is exactly one spec under
// UngroupedKey.
//
// Preconditions, checked before any spec is built: the grouping
// variable must be a single known column, and the palette must hold
// at least two colors per input strain table.
func BuildChartSpecs(pt *PlotTable, opts Options) (*SpecSet, error) {
	opts = opts.withDefaults()

	need := 2 * len(pt.Strains)
	if len(opts.Colors) < need {
		return nil, core.NewInsufficientColorsError(len(opts.Colors), need)
	}

	if opts.GroupVar != "" {
		// A comma marks an explicit list of names; a space is legal
		// inside a single column name.
		if strings.Contains(opts.GroupVar, ",") {
			return nil, core.NewGroupVariableError(opts.GroupVar, "must be a single column name")
		}
		if !pt.hasGroupColumn(opts.GroupVar) {
			return nil, core.NewGroupVariableError(opts.GroupVar, "is not a column of the data")
		}
	}

	fills := make([]FillKey, 0, need)
	for _, strain := range pt.Strains {
		for _, cond := range Conditions() {
			fills = append(fills, FillKey{Condition: cond, Strain: strain})
		}
	}
	colors := opts.Colors[:need]

	yMin, yMax, _ := pt.TiterRange()

	base := ChartSpec{
		XColumn:         pt.SubjectCol,
		Fills:           fills,
		FillColors:      colors,
		RiseOutline:     RiseOutline,
		FlatOutline:     FlatOutline,
		RefLineY:        ReferenceTiter,
		YMin:            yMin,
		YMax:            yMax,
		FacetVar:        opts.GroupVar,
		FreeX:           opts.GroupVar != "",
		DropEmptyFacets: opts.GroupVar != "",
	}

	set := &SpecSet{Specs: make(map[string]ChartSpec), Cols: opts.Cols}

	if opts.GroupVar == "" {
		spec := base
		spec.Key = UngroupedKey
		spec.Rows = pt.Rows
		spec.Subjects = pt.Subjects
		spec.XAxisTitle = pt.SubjectCol
		set.Keys = []string{UngroupedKey}
		set.Specs[UngroupedKey] = spec
		return set, nil
	}

	levels := opts.GroupLevels
	if len(levels) == 0 {
		levels = groupLevels(pt, opts.GroupVar)
	}
	for i, level := range levels {
		spec := base
		spec.Key = level
		for _, r := range pt.Rows {
			if pt.groupValue(r, opts.GroupVar) == level {
				spec.Rows = append(spec.Rows, r)
			}
		}
		spec.Subjects = subjectLevels(pt.Subjects, spec.Rows)
		if len(spec.Rows) == 0 {
			// Keep the layout slot for an empty level.
			spec.Blank = true
		}
		// Only the last chart keeps its x axis title; the rest stay
		// bare to reduce clutter in stacked layouts.
		if i == len(levels)-1 {
			spec.XAxisTitle = pt.SubjectCol
		}
		set.Keys = append(set.Keys, level)
		set.Specs[level] = spec
	}

	return set, nil
}

// groupLevels coerces the grouping column to a categorical: distinct
// values in order of first appearance over the plotting rows.
func groupLevels(pt *PlotTable, groupVar string) []string {
	var levels []string
	seen := make(map[string]bool)
	for _, r := range pt.Rows {
		v := pt.groupValue(r, groupVar)
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels
}

// subjectLevels restricts the global subject ordering to subjects
// present in the partition, preserving order.
func subjectLevels(all []string, rows []PlotRow) []string {
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[r.Subject] = true
	}
	var out []string
	for _, s := range all {
		if present[s] {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
