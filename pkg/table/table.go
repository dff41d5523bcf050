package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is an immutable header + rows view over tabular data. Rows are kept
// as raw string cells; callers parse what they need. A missing cell (short
// row) reads as the empty string.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table from a header and rows. The header is copied; rows are
// retained as-is and must not be mutated afterwards.
func New(columns []string, rows [][]string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &Table{columns: cols, index: index, rows: rows}
}

// Parse reads CSV content into a Table. The first non-empty record is the
// header. Blank records and records that fail to parse are skipped, matching
// how upstream exports are tolerated.
func Parse(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var columns []string
	var rows [][]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		isEmpty := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				isEmpty = false
				break
			}
		}
		if isEmpty {
			continue
		}

		if columns == nil {
			columns = record
			continue
		}
		rows = append(rows, record)
	}

	if columns == nil {
		return nil, fmt.Errorf("CSV content is empty or contains no valid data")
	}

	return New(columns, rows), nil
}

// Columns returns the header names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the value of the named column in row i, or "" when the column
// is absent or the row is short.
func (t *Table) Cell(i int, name string) string {
	col, ok := t.index[name]
	if !ok {
		return ""
	}
	row := t.rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// Row returns row i as a column→value map, skipping short-row cells.
func (t *Table) Row(i int) map[string]string {
	row := t.rows[i]
	m := make(map[string]string, len(t.columns))
	for c, name := range t.columns {
		if c < len(row) {
			m[name] = row[c]
		}
	}
	return m
}

// Write serializes the table back to CSV, header first.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
