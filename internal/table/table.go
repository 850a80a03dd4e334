// internal/table/table.go
package table

import (
	"errors"
	"fmt"
	"strings"

	"netsql/internal/core/domain"
)

// ErrMissingInput means a table the source needs was never extracted.
var ErrMissingInput = errors.New("input table missing")

// Join suffixes for non-key columns present on both sides.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

func opErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrTableOperation, fmt.Sprintf(format, args...))
}

// Join is an inner join of left and right on column on. Output columns are
// the left headers followed by the right headers without the key. Rows come
// in left order, then right order within one key.
func Join(left, right *domain.Table, on string) (*domain.Table, error) {
	li := left.ColumnIndex(on)
	if li < 0 {
		return nil, opErr("join column %q not in left table", on)
	}
	ri := right.ColumnIndex(on)
	if ri < 0 {
		return nil, opErr("join column %q not in right table", on)
	}

	clash := make(map[string]bool)
	for _, h := range right.Headers {
		if h != on && left.ColumnIndex(h) >= 0 {
			clash[h] = true
		}
	}

	headers := make([]string, 0, len(left.Headers)+len(right.Headers)-1)
	for _, h := range left.Headers {
		if clash[h] {
			h += LeftSuffix
		}
		headers = append(headers, h)
	}
	rightCols := make([]int, 0, len(right.Headers)-1)
	for i, h := range right.Headers {
		if i == ri {
			continue
		}
		if clash[h] {
			h += RightSuffix
		}
		headers = append(headers, h)
		rightCols = append(rightCols, i)
	}

	out := domain.NewTable(headers)
	if err := out.Validate(); err != nil {
		return nil, opErr("join of %q: %v", on, err)
	}

	byKey := make(map[string][]int)
	for i, r := range right.Rows {
		byKey[r[ri]] = append(byKey[r[ri]], i)
	}

	for _, l := range left.Rows {
		for _, i := range byKey[l[li]] {
			row := make([]string, 0, len(headers))
			row = append(row, l...)
			for _, c := range rightCols {
				row = append(row, right.Rows[i][c])
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Filter keeps rows matching every condition. A cell matches a condition
// when it contains any of the condition's values (case-sensitive).
func Filter(t *domain.Table, conds []domain.Condition) (*domain.Table, error) {
	idx := make([]int, len(conds))
	for i, c := range conds {
		idx[i] = t.ColumnIndex(c.Field)
		if idx[i] < 0 {
			return nil, opErr("condition column %q not in table", c.Field)
		}
	}

	out := domain.NewTable(t.Headers)
	for _, r := range t.Rows {
		if matches(r, conds, idx) {
			out.Rows = append(out.Rows, append([]string(nil), r...))
		}
	}
	return out, nil
}

func matches(row []string, conds []domain.Condition, idx []int) bool {
	for i, c := range conds {
		cell := row[idx[i]]
		found := false
		for _, v := range c.Values {
			if strings.Contains(cell, v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Project keeps the named columns in table order. ["*"] keeps everything.
func Project(t *domain.Table, fields []string) (*domain.Table, error) {
	if len(fields) == 1 && fields[0] == domain.Wildcard {
		return t.Clone(), nil
	}

	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		if t.ColumnIndex(f) < 0 {
			return nil, opErr("field %q not in table (columns: %s)", f, strings.Join(t.Headers, ", "))
		}
		want[f] = true
	}

	var keep []int
	var headers []string
	for i, h := range t.Headers {
		if want[h] {
			keep = append(keep, i)
			headers = append(headers, h)
		}
	}

	out := domain.NewTable(headers)
	for _, r := range t.Rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = r[i]
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Head returns a copy with at most n rows.
func Head(t *domain.Table, n int) *domain.Table {
	if n < 0 {
		n = 0
	}
	out := domain.NewTable(t.Headers)
	for i := 0; i < n && i < len(t.Rows); i++ {
		out.Rows = append(out.Rows, append([]string(nil), t.Rows[i]...))
	}
	return out
}

// Combine builds the report table of one host: join (or base table), then
// filter, then projection.
func Combine(tables map[string]*domain.Table, q domain.Query, src domain.SourceDefinition) (*domain.Table, error) {
	var t *domain.Table

	if src.JoinTables && src.Join != nil {
		left, ok := tables[src.Join.Left]
		if !ok || left == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingInput, src.Join.Left)
		}
		right, ok := tables[src.Join.Right]
		if !ok || right == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingInput, src.Join.Right)
		}
		joined, err := Join(left, right, src.Join.On)
		if err != nil {
			return nil, err
		}
		t = joined
	} else {
		base := src.BaseCommand()
		tbl, ok := tables[base]
		if !ok || tbl == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingInput, base)
		}
		t = tbl
	}

	filtered, err := Filter(t, q.Conditions)
	if err != nil {
		return nil, err
	}
	return Project(filtered, q.Fields)
}
