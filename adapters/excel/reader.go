// Package excel reads per-strain titer tables from Excel workbooks
// and CSV files.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"serovis/domain/titer"
)

// DataReader loads a named collection of per-strain tables from disk.
// An .xlsx workbook contributes one table per sheet, keyed by sheet
// name. A directory contributes one table per .csv file, keyed by the
// file stem.
type DataReader struct {
	path string
}

// NewDataReader creates a reader for the given workbook or directory.
func NewDataReader(path string) *DataReader {
	return &DataReader{path: path}
}

// ReadStrainTables loads every per-strain table from the source.
func (r *DataReader) ReadStrainTables() (titer.StrainTables, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("input not found: %s", r.path)
	}
	if info.IsDir() {
		return r.readCSVDir()
	}
	if strings.ToLower(filepath.Ext(r.path)) == ".csv" {
		return nil, fmt.Errorf("a single CSV holds one strain; pass a directory of CSVs or an .xlsx workbook")
	}
	return r.readWorkbook()
}

// readWorkbook reads one table per sheet, keyed by sheet name.
func (r *DataReader) readWorkbook() (titer.StrainTables, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	tables := make(titer.StrainTables)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		table, err := tableFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		tables[sheet] = table
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", r.path)
	}
	return tables, nil
}

// readCSVDir reads one table per .csv file, keyed by the file stem.
func (r *DataReader) readCSVDir() (titer.StrainTables, error) {
	entries, err := os.ReadDir(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.path, err)
	}

	tables := make(titer.StrainTables)
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".csv" {
			continue
		}
		fp := filepath.Join(r.path, e.Name())
		file, err := os.Open(fp)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fp, err)
		}
		rows, err := csv.NewReader(file).ReadAll()
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fp, err)
		}
		table, err := tableFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		strain := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		tables[strain] = table
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no .csv files under %s", r.path)
	}
	return tables, nil
}

// tableFromRows converts raw string rows into a domain table. Cells
// stay strings; numeric coercion for titer columns happens in the
// reshape step, where blanks become nulls.
func tableFromRows(rows [][]string) (titer.Table, error) {
	if len(rows) < 2 {
		return titer.Table{}, fmt.Errorf("need a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := titer.Table{Columns: headers}
	for _, raw := range rows[1:] {
		row := make(titer.Row, len(headers))
		for i, h := range headers {
			if i >= len(raw) || strings.TrimSpace(raw[i]) == "" {
				row[h] = nil
				continue
			}
			row[h] = strings.TrimSpace(raw[i])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
