// internal/adapters/output/parquet.go
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/parquet-go"

	"netsql/internal/core/domain"
)

// tableSchema builds a flat schema with one required string column per header.
func tableSchema(t *domain.Table) *parquet.Schema {
	group := make(parquet.Group, len(t.Headers))
	for _, h := range t.Headers {
		group[h] = parquet.String()
	}
	return parquet.NewSchema("report", group)
}

// WriteParquet writes t as a parquet file with every column typed as string.
func WriteParquet(path string, t *domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	schema := tableSchema(t)

	// las columnas del schema quedan ordenadas por nombre, no por header
	cols := schema.Columns()
	order := make([]int, len(cols))
	for i, col := range cols {
		order[i] = t.ColumnIndex(col[0])
	}

	w := parquet.NewWriter(f, schema)
	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(parquet.Row, len(order))
		for leaf, src := range order {
			row[leaf] = parquet.ByteArrayValue([]byte(r[src])).Level(0, 0, leaf)
		}
		rows = append(rows, row)
	}
	if _, err := w.WriteRows(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return f.Close()
}
