package titer

// PlotRow is one bar of the final chart data: a Pre or Post titer for
// one subject and strain, annotated with the four-fold-rise flag.
type PlotRow struct {
	Subject   string    `json:"subject"`
	Strain    string    `json:"strain"`
	Condition Condition `json:"condition"` // CondPre or CondPost, never CondFC
	Titer     *float64  `json:"titer"`
	// FourFC is nil when the pair's fold-change value was missing.
	FourFC     *bool          `json:"four_fc"`
	Covariates map[string]any `json:"covariates,omitempty"`
}

// PlotTable is the long table joined with the flag table, restricted
// to the two plotting conditions.
type PlotTable struct {
	SubjectCol    string
	Strains       []string
	CovariateCols []string
	// Subjects holds the subject categorical levels in order of first
	// appearance, fixed here so chart legends and x axes are identical
	// across runs and partitions.
	Subjects []string
	Rows     []PlotRow
}

// BuildPlotTable joins the flag table onto the long table by
// (subject, strain), drops the fold-change rows, and pins both
// categorical orderings: Condition to {Pre, Post} and subjects to
// first-appearance order.
func BuildPlotTable(long *LongTable, flags FlagTable) *PlotTable {
	pt := &PlotTable{
		SubjectCol:    long.SubjectCol,
		Strains:       long.Strains,
		CovariateCols: long.CovariateCols,
	}

	seen := make(map[string]bool)
	for _, r := range long.Rows {
		class := r.Class()
		if class != CondPre && class != CondPost {
			continue
		}
		if !seen[r.Subject] {
			seen[r.Subject] = true
			pt.Subjects = append(pt.Subjects, r.Subject)
		}
		pt.Rows = append(pt.Rows, PlotRow{
			Subject:    r.Subject,
			Strain:     r.Strain,
			Condition:  class,
			Titer:      r.Titer,
			FourFC:     flags[PairKey{Subject: r.Subject, Strain: r.Strain}],
			Covariates: r.Covariates,
		})
	}

	return pt
}

// hasGroupColumn reports whether name is a plotting-table column that
// rows can be grouped by: any covariate, the strain column, or the
// subject column.
func (pt *PlotTable) hasGroupColumn(name string) bool {
	return name == StrainColumn || name == pt.SubjectCol ||
		containsString(pt.CovariateCols, name)
}

// groupValue reads a row's value for the grouping column.
func (pt *PlotTable) groupValue(r PlotRow, groupVar string) string {
	switch groupVar {
	case StrainColumn:
		return r.Strain
	case pt.SubjectCol:
		return r.Subject
	}
	return cellString(r.Covariates[groupVar])
}

// TiterRange returns the global [min, max] of observed titers. It is
// computed once over the whole plotting table and reused for every
// partition so panels stay visually comparable.
func (pt *PlotTable) TiterRange() (min, max float64, ok bool) {
	for _, r := range pt.Rows {
		if r.Titer == nil {
			continue
		}
		v := *r.Titer
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}
