// internal/core/domain/scan_result.go
package domain

import (
	"time"
)

// RunResult is the outcome of one host's pipeline.
type RunResult struct {
	// Host procesado
	Host Host

	// Attempted is false when the run was aborted before this host started
	Attempted bool

	// Succeeded is true when commands ran and extraction completed
	Succeeded bool

	// State is the last state the pipeline reached
	State HostState

	// ReportTable is the joined, filtered and projected table (nil when the
	// source does not process tables or the host failed)
	ReportTable *Table

	// Tables holds the extracted table of each command, keyed by command
	Tables map[string]*Table

	// Skipped lists commands that contributed nothing and why
	Skipped []CommandSkip

	// Err is the failure that stopped the host, if any
	Err error

	// Duration of the whole host pipeline
	Duration time.Duration
}

// CommandSkip records a recoverable per-command failure.
type CommandSkip struct {
	Command string
	Reason  error
}

// NewRunResult creates a result for host in the NotStarted state.
func NewRunResult(host Host) *RunResult {
	return &RunResult{
		Host:   host,
		State:  HostStateNotStarted,
		Tables: make(map[string]*Table),
	}
}

// Fail marks the result failed with err.
func (r *RunResult) Fail(err error) {
	r.State = HostStateFailed
	r.Succeeded = false
	r.Err = err
}

// Skip records a per-command skip.
func (r *RunResult) Skip(command string, reason error) {
	r.Skipped = append(r.Skipped, CommandSkip{Command: command, Reason: reason})
}

// Fatal reports whether this host's failure must stop the whole run.
func (r *RunResult) Fatal() bool {
	return r.Err != nil && IsFatal(r.Err)
}

// RowCount returns the number of report rows, zero without a report.
func (r *RunResult) RowCount() int {
	return r.ReportTable.Len()
}
