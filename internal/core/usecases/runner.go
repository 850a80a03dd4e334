// internal/core/usecases/runner.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/platform/logx"
	"netsql/internal/platform/metrics"
	"netsql/internal/platform/ui"
	"netsql/internal/platform/workerpool"
	"netsql/internal/table"
)

// Catalog es lo que el runner necesita del catálogo cargado.
type Catalog interface {
	CommandResolver
	ResolveSource(name string) (domain.SourceDefinition, error)
}

// RunnerOptions configura el Runner.
type RunnerOptions struct {
	Catalog   Catalog
	Query     domain.Query
	Sessions  ports.SessionFactory
	Extractor TableExtractor
	Store     ports.ArtifactStore
	Writers   []ports.ReportWriter
	Presenter ui.Presenter
	Metrics   *metrics.Recorder
	Logger    logx.Logger

	Workers     int
	ScreenLines int
	KeepFull    bool
	Replay      bool
	RunID       string

	// ReportPath devuelve la ruta del CSV de un host para mostrarla; opcional
	ReportPath func(host domain.Host, reportName string) string
}

// Runner ejecuta una query sobre una lista de hosts.
type Runner struct {
	opts   RunnerOptions
	logger logx.Logger
}

// NewRunner crea el runner aplicando defaults.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Runner{opts: opts, logger: opts.Logger.With("component", "runner")}
}

// Run resolves the data source, processes every host and writes the
// aggregate reports. A fatal host result (auth failure, table operation
// error) cancels the hosts not yet started; Run then returns the partial
// summary together with that error.
func (r *Runner) Run(ctx context.Context, hosts []domain.Host) (domain.Summary, error) {
	src, err := r.opts.Catalog.ResolveSource(r.opts.Query.Source)
	if err != nil {
		return domain.Summary{}, err
	}

	agg := NewAggregator(AggregatorOptions{
		RunID:       r.opts.RunID,
		Query:       r.opts.Query,
		Source:      src,
		TotalHosts:  len(hosts),
		ScreenLines: r.opts.ScreenLines,
		KeepFull:    r.opts.KeepFull,
	})
	log := r.logger.With("run_id", agg.RunID())

	pipeline := NewHostPipeline(HostPipelineOptions{
		Commands:  r.opts.Catalog,
		Source:    src,
		Query:     r.opts.Query,
		Sessions:  r.opts.Sessions,
		Extractor: r.opts.Extractor,
		Store:     r.opts.Store,
		Replay:    r.opts.Replay,
		Metrics:   r.opts.Metrics,
		Logger:    r.opts.Logger,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		fatalOnce sync.Once
		fatalErr  error
	)
	abort := func(err error) {
		fatalOnce.Do(func() {
			fatalErr = err
			cancel()
		})
	}

	tasks := make([]workerpool.Task, 0, len(hosts))
	for _, h := range hosts {
		tasks = append(tasks, &hostTask{
			host: h,
			run: func(ctx context.Context, host domain.Host) error {
				res := r.processHost(ctx, pipeline, agg, src, host)
				if res.Fatal() {
					abort(res.Err)
				}
				return res.Err
			},
		})
	}

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers: r.opts.Workers,
		Logger:  r.opts.Logger,
	})
	stats := pool.Stats()
	log.Info("run started",
		"query", r.opts.Query.String(),
		"source", src.Name,
		"hosts", len(hosts),
		"workers", stats.Workers,
		"scheduler", stats.SchedulerName,
	)
	r.opts.Presenter.Start(ui.RunInfo{
		Query:      r.opts.Query.String(),
		DataSource: src.Name,
		Hosts:      len(hosts),
		Workers:    r.opts.Workers,
		NoConnect:  r.opts.Replay,
	})

	results := pool.Submit(runCtx, tasks)

	notStarted := 0
	for _, tr := range results {
		if !tr.Started {
			notStarted++
		}
	}
	if notStarted > 0 {
		log.Warn("hosts not attempted", "count", notStarted)
	}

	summary := agg.Finalize()

	if fatalErr == nil && ctx.Err() == nil {
		r.writeReports(ctx, summary)
	}

	r.opts.Presenter.Finish(ui.RunStats{
		RunID:          summary.RunID,
		Duration:       summary.FinishedAt.Sub(summary.StartedAt),
		TotalHosts:     summary.TotalHosts,
		AttemptedHosts: summary.AttemptedHosts,
		SucceededHosts: summary.SucceededHosts,
		FailedHosts:    len(summary.FailedHosts),
		TotalRows:      summary.TotalRows(),
	})
	log.Info("run finished",
		"succeeded", summary.SucceededHosts,
		"attempted", summary.AttemptedHosts,
		"total", summary.TotalHosts,
		"failed", len(summary.FailedHosts),
		"rows", summary.TotalRows(),
	)

	if fatalErr != nil {
		return summary, fatalErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (r *Runner) processHost(ctx context.Context, p *HostPipeline, agg *Aggregator, src domain.SourceDefinition, host domain.Host) *domain.RunResult {
	pr := r.opts.Presenter
	pr.StartHost(host.Address)

	res := p.Run(ctx, host)
	entry, hasEntry := agg.Record(res)
	r.opts.Metrics.HostDone(res.Err, res.RowCount(), res.Duration)

	for _, s := range res.Skipped {
		pr.Warning(fmt.Sprintf("%s: %q skipped: %v", host.Address, s.Command, s.Reason))
	}

	switch {
	case res.Succeeded:
		pr.FinishHost(host.Address, ui.StatusSuccess, res.Duration, res.RowCount())
		if hasEntry {
			view := ui.ReportView{
				Host:    host.Address,
				Headers: entry.Table.Headers,
				Rows:    entry.Table.Rows,
				Total:   entry.RowCount,
				Limit:   r.opts.ScreenLines,
			}
			if r.opts.ReportPath != nil {
				view.Saved = r.opts.ReportPath(host, src.ReportName)
			}
			pr.ShowReport(view)
		}
	case res.Fatal():
		pr.FinishHost(host.Address, ui.StatusError, res.Duration, 0)
		pr.Error(fatalMessage(host, res.Err))
	default:
		pr.FinishHost(host.Address, ui.StatusWarning, res.Duration, 0)
		pr.Warning(skipMessage(host, res.Err))
	}
	return res
}

func (r *Runner) writeReports(ctx context.Context, summary domain.Summary) {
	for _, w := range r.opts.Writers {
		if err := w.Write(ctx, summary); err != nil {
			r.logger.Err(err, "writer", w.Name())
			r.opts.Presenter.Error(fmt.Sprintf("%s report not written: %v", w.Name(), err))
		}
	}
}

func skipMessage(host domain.Host, err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionTimeout):
		return fmt.Sprintf("Timeout while connecting to %s: %v. Skipping.", host.Address, err)
	case errors.Is(err, domain.ErrSessionProtocol):
		return fmt.Sprintf("SSH protocol negotiation failed with %s: %v. Skipping.", host.Address, err)
	case errors.Is(err, table.ErrMissingInput):
		return fmt.Sprintf("No table to report for %s: %v. Skipping.", host.Address, err)
	default:
		return fmt.Sprintf("Could not process %s: %v. Skipping.", host.Address, err)
	}
}

func fatalMessage(host domain.Host, err error) string {
	if errors.Is(err, domain.ErrSessionAuth) {
		return fmt.Sprintf("Authentication failed on %s, terminating: %v", host.Address, err)
	}
	return fmt.Sprintf("Aborting run on %s: %v", host.Address, err)
}

// hostTask adapta un host a workerpool.Task.
type hostTask struct {
	host domain.Host
	run  func(ctx context.Context, host domain.Host) error
}

func (t *hostTask) Execute(ctx context.Context) error { return t.run(ctx, t.host) }

func (t *hostTask) Name() string { return t.host.Address }
