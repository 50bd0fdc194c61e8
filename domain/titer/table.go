package titer

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a single record keyed by column name. Numeric cells are
// float64, missing cells are nil, everything else stays a string.
type Row map[string]any

// Table is a wide per-strain input table: one row per subject, with a
// subject identifier, Pre/Post/FC titer columns and any number of
// covariate columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// StrainTables is a named collection of per-strain tables keyed by
// strain label. Tables are always processed in lexicographic key
// order so results are reproducible regardless of map iteration.
type StrainTables map[string]Table

// Condition is the measurement condition of a titer value.
type Condition string

const (
	CondPre  Condition = "Pre"
	CondPost Condition = "Post"
	CondFC   Condition = "FC"
)

// Conditions returns the ordered two-level plotting category:
// Pre strictly before Post.
func Conditions() []Condition {
	return []Condition{CondPre, CondPost}
}

// conditionClass matches a column name against the declared condition
// schema: "Pre" prefix, "Post" prefix, or exact "FC". Matching is
// case-sensitive.
func conditionClass(column string) (Condition, bool) {
	switch {
	case column == string(CondFC):
		return CondFC, true
	case strings.HasPrefix(column, string(CondPre)):
		return CondPre, true
	case strings.HasPrefix(column, string(CondPost)):
		return CondPost, true
	}
	return "", false
}

// columnUnion merges the column sets of all tables, in lexicographic
// strain order and first-appearance order within that.
func columnUnion(keys []string, tables StrainTables) []string {
	var union []string
	seen := make(map[string]bool)
	for _, k := range keys {
		for _, c := range tables[k].Columns {
			if !seen[c] {
				seen[c] = true
				union = append(union, c)
			}
		}
	}
	return union
}

// numericCell coerces a cell to a titer value. Missing or
// non-numeric cells become nil rather than zero.
func numericCell(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return &x
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// cellString renders a cell for use as a categorical label.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
