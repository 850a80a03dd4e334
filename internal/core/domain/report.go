// internal/core/domain/report.go
package domain

import "time"

// ReportEntry is one host's contribution to the aggregate report.
type ReportEntry struct {
	Host Host

	// Table holds at most the configured number of screen lines
	Table *Table

	// Full is the whole report table; nil unless the aggregator keeps them
	// (HTML output)
	Full *Table

	// RowCount is the size of the full report table
	RowCount int
}

// Summary is the folded result of a run.
type Summary struct {
	RunID          string
	Query          Query
	Source         SourceDefinition
	Entries        []ReportEntry
	TotalHosts     int // tamaño de la lista de hosts
	AttemptedHosts int // hosts que llegaron a empezar
	SucceededHosts int
	FailedHosts    []HostFailure
	StartedAt      time.Time
	FinishedAt     time.Time
}

// HostFailure names a host that did not succeed and why.
type HostFailure struct {
	Host   Host
	Reason string
}

// TotalRows sums RowCount over entries.
func (s Summary) TotalRows() int {
	n := 0
	for _, e := range s.Entries {
		n += e.RowCount
	}
	return n
}
