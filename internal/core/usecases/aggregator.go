// internal/core/usecases/aggregator.go
package usecases

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"netsql/internal/core/domain"
	"netsql/internal/table"
)

// AggregatorOptions configura el agregador de resultados.
type AggregatorOptions struct {
	RunID       string // vacío: se genera un UUID
	Query       domain.Query
	Source      domain.SourceDefinition
	TotalHosts  int
	ScreenLines int
	KeepFull    bool // conserva la tabla completa (reporte HTML)
}

// Aggregator pliega los RunResult de cada host en un Summary. Safe for
// concurrent Record calls; hosts finish in any order.
type Aggregator struct {
	opts    AggregatorOptions
	started time.Time

	mu       sync.Mutex
	entries  []domain.ReportEntry
	failures []domain.HostFailure

	attempted atomic.Int64
	succeeded atomic.Int64
}

// NewAggregator crea un agregador vacío.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.ScreenLines < 0 {
		opts.ScreenLines = 0
	}
	return &Aggregator{opts: opts, started: time.Now()}
}

// RunID identifies the run in reports and logs.
func (a *Aggregator) RunID() string {
	return a.opts.RunID
}

// Record folds one host result in. It returns the report entry added, if any.
func (a *Aggregator) Record(res *domain.RunResult) (domain.ReportEntry, bool) {
	if res == nil || !res.Attempted {
		return domain.ReportEntry{}, false
	}
	a.attempted.Add(1)

	if !res.Succeeded {
		reason := "failed"
		if res.Err != nil {
			reason = res.Err.Error()
		}
		a.mu.Lock()
		a.failures = append(a.failures, domain.HostFailure{Host: res.Host, Reason: reason})
		a.mu.Unlock()
		return domain.ReportEntry{}, false
	}

	a.succeeded.Add(1)
	if res.ReportTable == nil {
		return domain.ReportEntry{}, false
	}

	entry := domain.ReportEntry{
		Host:     res.Host,
		Table:    table.Head(res.ReportTable, a.opts.ScreenLines),
		RowCount: res.ReportTable.Len(),
	}
	if a.opts.KeepFull {
		entry.Full = res.ReportTable
	}

	a.mu.Lock()
	a.entries = append(a.entries, entry)
	a.mu.Unlock()
	return entry, true
}

// Attempted returns how many hosts were recorded so far.
func (a *Aggregator) Attempted() int {
	return int(a.attempted.Load())
}

// Finalize returns the summary with entries and failures in host-list order.
// It can be called more than once.
func (a *Aggregator) Finalize() domain.Summary {
	a.mu.Lock()
	entries := append([]domain.ReportEntry(nil), a.entries...)
	failures := append([]domain.HostFailure(nil), a.failures...)
	a.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Host.Index < entries[j].Host.Index })
	sort.SliceStable(failures, func(i, j int) bool { return failures[i].Host.Index < failures[j].Host.Index })

	attempted := int(a.attempted.Load())
	total := a.opts.TotalHosts
	if attempted > total {
		total = attempted
	}

	return domain.Summary{
		RunID:          a.opts.RunID,
		Query:          a.opts.Query,
		Source:         a.opts.Source,
		Entries:        entries,
		TotalHosts:     total,
		AttemptedHosts: attempted,
		SucceededHosts: int(a.succeeded.Load()),
		FailedHosts:    failures,
		StartedAt:      a.started,
		FinishedAt:     time.Now(),
	}
}
