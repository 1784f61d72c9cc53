// Package dataset loads the tabular artifacts the experiment runs against.
// Features and targets live in separate CSV files that share row order; they
// are read once at startup and concatenated column-wise into a single working
// table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Table is a rectangular, column-ordered table of string cells. Column order
// is fixed at read time and preserved through concatenation.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and row data. Every row must have
// exactly one cell per column.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(columns))
		}
	}
	return &Table{columns: columns, index: index, rows: rows}, nil
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string { return t.columns }

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.rows) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	col := make([]string, len(t.rows))
	for r, row := range t.rows {
		col[r] = row[i]
	}
	return col, nil
}

// SetColumn replaces the named column in place. The replacement must match
// the table's row count.
func (t *Table) SetColumn(name string, values []string) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	for r := range t.rows {
		t.rows[r][i] = values[r]
	}
	return nil
}

// FloatColumn parses the named column as float64 values.
func (t *Table) FloatColumn(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for r, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, r, err)
		}
		out[r] = v
	}
	return out, nil
}

// Matrix assembles a row-major numeric matrix over the given columns, in the
// given order.
func (t *Table) Matrix(columns []string) ([][]float64, error) {
	cols := make([][]float64, len(columns))
	for i, name := range columns {
		c, err := t.FloatColumn(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	out := make([][]float64, len(t.rows))
	for r := range t.rows {
		row := make([]float64, len(columns))
		for i := range columns {
			row[i] = cols[i][r]
		}
		out[r] = row
	}
	return out, nil
}

// Concat joins two tables column-wise. Both must have the same row count and
// no overlapping column names.
func Concat(a, b *Table) (*Table, error) {
	if a.Rows() != b.Rows() {
		return nil, fmt.Errorf("row count mismatch: %d vs %d", a.Rows(), b.Rows())
	}
	columns := append(append([]string{}, a.columns...), b.columns...)
	rows := make([][]string, a.Rows())
	for r := range rows {
		rows[r] = append(append([]string{}, a.rows[r]...), b.rows[r]...)
	}
	return NewTable(columns, rows)
}

// ReadCSV reads a headered CSV file into a table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file %s has no data rows", path)
	}
	return NewTable(records[0], records[1:])
}

// ValueCounts tallies the distinct values of the named column, most frequent
// first, ties broken by value for stable output.
func (t *Table) ValueCounts(name string) ([]ValueCount, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, v := range col {
		counts[v]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

// ValueCount is a single entry of a value-count tally.
type ValueCount struct {
	Value string
	Count int
}
