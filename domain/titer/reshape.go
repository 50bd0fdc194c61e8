package titer

import (
	"sort"

	"serovis/domain/core"
)

// StrainColumn carries the strain label on long and plotting rows.
// When an input table lacks it, the collection key fills it in.
const StrainColumn = "Strain"

// LongRow is one (subject, strain, condition) observation.
type LongRow struct {
	Subject string
	Strain  string
	// Condition holds the matched source column name ("Pre", "Post",
	// "FC" or a Pre/Post-prefixed variant).
	Condition string
	// Titer is the observed value on the log2 scale; nil when missing.
	Titer      *float64
	Covariates map[string]any
}

// LongTable is the melted union of all per-strain tables: exactly one
// row per original row per matched condition column.
type LongTable struct {
	SubjectCol    string
	Strains       []string // collection keys, lexicographic
	CovariateCols []string // non-condition, non-subject columns
	Rows          []LongRow
}

// Class reports the condition category of a long row.
func (r LongRow) Class() Condition {
	c, _ := conditionClass(r.Condition)
	return c
}

// Reshape unions the per-strain tables and melts them to long format.
//
// Every table must contain subjectCol; this is validated for all
// tables before any reshaping happens. The melt takes every column
// matching the declared condition schema into (Condition, titer)
// pairs; all remaining columns ride along as covariates. Cells absent
// from a table's column set become nil through the column union.
func Reshape(tables StrainTables, subjectCol string) (*LongTable, error) {
	if len(tables) == 0 {
		return nil, core.ErrEmptyInput
	}

	keys := make([]string, 0, len(tables))
	for k := range tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Precondition: subject column everywhere, checked up front.
	for _, k := range keys {
		if !tables[k].HasColumn(subjectCol) {
			return nil, core.NewSubjectColumnError(subjectCol, k)
		}
	}

	union := columnUnion(keys, tables)

	// Deterministic melt order: Pre columns, then Post, then FC, each
	// in column-union order.
	var condCols []string
	for _, class := range []Condition{CondPre, CondPost, CondFC} {
		for _, c := range union {
			if got, ok := conditionClass(c); ok && got == class {
				condCols = append(condCols, c)
			}
		}
	}

	var covCols []string
	for _, c := range union {
		if _, ok := conditionClass(c); ok {
			continue
		}
		if c == subjectCol || c == StrainColumn {
			continue
		}
		covCols = append(covCols, c)
	}

	long := &LongTable{
		SubjectCol:    subjectCol,
		Strains:       keys,
		CovariateCols: covCols,
	}

	for _, k := range keys {
		for _, row := range tables[k].Rows {
			strain := k
			if s := cellString(row[StrainColumn]); s != "" {
				strain = s
			}
			subject := cellString(row[subjectCol])
			covs := make(map[string]any, len(covCols))
			for _, c := range covCols {
				covs[c] = row[c]
			}
			for _, c := range condCols {
				long.Rows = append(long.Rows, LongRow{
					Subject:    subject,
					Strain:     strain,
					Condition:  c,
					Titer:      numericCell(row[c]),
					Covariates: covs,
				})
			}
		}
	}

	return long, nil
}
