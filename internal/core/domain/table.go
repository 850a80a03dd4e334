package domain

import "fmt"

// Table is an ordered set of named string columns. Rows keep the order in
// which they were extracted.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates an empty table with a copy of headers.
func NewTable(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h, Rows: [][]string{}}
}

// Append adds one row. The row must have one value per header.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Headers) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.Headers))
	}
	r := make([]string, len(row))
	copy(r, row)
	t.Rows = append(t.Rows, r)
	return nil
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := NewTable(t.Headers)
	out.Rows = make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, len(r))
		copy(row, r)
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Validate checks header uniqueness and row widths.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Headers))
	for _, h := range t.Headers {
		if _, dup := seen[h]; dup {
			return fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = struct{}{}
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Headers) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(r), len(t.Headers))
		}
	}
	return nil
}
