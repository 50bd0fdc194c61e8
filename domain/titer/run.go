package titer

import (
	"time"

	"serovis/domain/core"
)

// RunRecord is the archivable summary of one pipeline run.
type RunRecord struct {
	ID         core.RunID     `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Options    Options        `json:"options"`
	StrainRows map[string]int `json:"strain_rows"`
	ChartKeys  []string       `json:"chart_keys"`
}

// NewRunRecord snapshots a completed run for the archive.
func NewRunRecord(tables StrainTables, opts Options, specs *SpecSet) *RunRecord {
	rows := make(map[string]int, len(tables))
	for k, t := range tables {
		rows[k] = len(t.Rows)
	}
	return &RunRecord{
		ID:         core.RunID(core.NewID()),
		CreatedAt:  time.Now().UTC(),
		Options:    opts.withDefaults(),
		StrainRows: rows,
		ChartKeys:  specs.Keys,
	}
}
