// internal/adapters/output/json.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"netsql/internal/core/domain"
	"netsql/internal/platform/logx"
)

// JSONSummary is the on-disk form of a run summary.
type JSONSummary struct {
	RunID          string        `json:"run_id"`
	Query          string        `json:"query"`
	DataSource     string        `json:"data_source"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     time.Time     `json:"finished_at"`
	TotalHosts     int           `json:"total_hosts"`
	AttemptedHosts int           `json:"attempted_hosts"`
	SucceededHosts int           `json:"succeeded_hosts"`
	TotalRows      int           `json:"total_rows"`
	Failed         []JSONFailure `json:"failed_hosts"`
	Entries        []JSONEntry   `json:"entries"`
}

// JSONFailure explica por qué un host no aportó filas.
type JSONFailure struct {
	Host   string `json:"host"`
	Reason string `json:"reason"`
}

// JSONEntry is one host's report view.
type JSONEntry struct {
	Host     string     `json:"host"`
	RowCount int        `json:"row_count"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
}

// BuildJSONSummary convierte un Summary a su forma serializable.
func BuildJSONSummary(s domain.Summary) JSONSummary {
	out := JSONSummary{
		RunID:          s.RunID,
		Query:          s.Query.String(),
		DataSource:     s.Source.Name,
		StartedAt:      s.StartedAt,
		FinishedAt:     s.FinishedAt,
		TotalHosts:     s.TotalHosts,
		AttemptedHosts: s.AttemptedHosts,
		SucceededHosts: s.SucceededHosts,
		TotalRows:      s.TotalRows(),
		Failed:         make([]JSONFailure, 0, len(s.FailedHosts)),
		Entries:        make([]JSONEntry, 0, len(s.Entries)),
	}
	for _, f := range s.FailedHosts {
		out.Failed = append(out.Failed, JSONFailure{Host: f.Host.Address, Reason: f.Reason})
	}
	for _, e := range s.Entries {
		je := JSONEntry{Host: e.Host.Address, RowCount: e.RowCount, Headers: []string{}, Rows: [][]string{}}
		if e.Table != nil {
			je.Headers = e.Table.Headers
			je.Rows = e.Table.Rows
		}
		out.Entries = append(out.Entries, je)
	}
	return out
}

// JSONWriter exporta el resumen en formato JSON.
type JSONWriter struct {
	layout Layout
	logger logx.Logger
}

// NewJSONWriter crea el writer JSON.
func NewJSONWriter(layout Layout, logger logx.Logger) *JSONWriter {
	return &JSONWriter{layout: layout, logger: logger.With("component", "json")}
}

func (w *JSONWriter) Name() string { return "json" }

// Write codifica el resumen con indentación en <report-dir>/<report-name>.json.
func (w *JSONWriter) Write(ctx context.Context, summary domain.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := w.layout.AggregatePath(summary.Source.ReportName, ".json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildJSONSummary(summary)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	w.logger.Info("json summary written", "path", path)
	return f.Close()
}
