// internal/core/usecases/host_pipeline.go
package usecases

import (
	"context"
	"errors"
	"time"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/platform/logx"
	"netsql/internal/platform/metrics"
	"netsql/internal/table"
)

// CommandResolver devuelve la definición de extracción de un comando.
type CommandResolver interface {
	ResolveCommand(command string) (domain.CommandDefinition, error)
}

// TableExtractor turns one command's raw output into a table.
type TableExtractor interface {
	Extract(host domain.Host, command, raw string, def domain.CommandDefinition) (*domain.Table, error)
}

// HostPipelineOptions configura un HostPipeline.
type HostPipelineOptions struct {
	Commands  CommandResolver
	Source    domain.SourceDefinition
	Query     domain.Query
	Sessions  ports.SessionFactory
	Extractor TableExtractor
	Store     ports.ArtifactStore
	// Replay: la salida cruda viene del store, no se vuelve a guardar
	Replay  bool
	Metrics *metrics.Recorder
	Logger  logx.Logger
}

var errNoOutput = errors.New("no command produced output")

// HostPipeline lleva un host por connect -> commands -> extract -> combine.
// It is stateless between hosts and safe for concurrent Run calls.
type HostPipeline struct {
	opts   HostPipelineOptions
	logger logx.Logger
}

// NewHostPipeline crea el pipeline por host.
func NewHostPipeline(opts HostPipelineOptions) *HostPipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &HostPipeline{
		opts:   opts,
		logger: opts.Logger.With("component", "host-pipeline", "source", opts.Source.Name),
	}
}

// Run processes host and always returns a result in a terminal state.
func (p *HostPipeline) Run(ctx context.Context, host domain.Host) *domain.RunResult {
	start := time.Now()
	res := domain.NewRunResult(host)
	res.Attempted = true
	defer func() { res.Duration = time.Since(start) }()

	log := p.logger.With("host", host.Address)

	// Connecting
	res.State = domain.HostStateConnecting
	sess, err := p.opts.Sessions.Open(ctx, host)
	if err != nil {
		res.Fail(asSessionError(err, host, ""))
		return res
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Debug("session close failed", "error", cerr.Error())
		}
	}()

	// CommandsRunning
	res.State = domain.HostStateCommandsRunning
	raws := make(map[string]string, len(p.opts.Source.Commands))
	for _, cmd := range p.opts.Source.Commands {
		if ctx.Err() != nil {
			res.Fail(domain.NewPipelineError(domain.ErrSession, host.Address, cmd, ctx.Err()))
			return res
		}

		raw, err := sess.Run(ctx, cmd)
		if err != nil {
			if errors.Is(err, domain.ErrExtraction) {
				// captura ausente en modo replay
				p.skip(res, log, cmd, err)
				continue
			}
			res.Fail(asSessionError(err, host, cmd))
			return res
		}
		p.opts.Metrics.CommandRun()

		raws[cmd] = raw
		if !p.opts.Replay {
			if err := p.opts.Store.SaveRaw(host, cmd, raw); err != nil {
				log.Warn("could not save raw output", "command", cmd, "error", err.Error())
			}
		}
	}

	if len(raws) == 0 {
		// ningún comando produjo salida (replay sin capturas)
		res.Fail(domain.NewPipelineError(domain.ErrExtraction, host.Address, "", errNoOutput))
		return res
	}

	// Extracting
	res.State = domain.HostStateExtracting
	for _, cmd := range p.opts.Source.Commands {
		raw, ok := raws[cmd]
		if !ok {
			continue
		}
		def, err := p.opts.Commands.ResolveCommand(cmd)
		if err != nil {
			p.skip(res, log, cmd, domain.NewPipelineError(domain.ErrUnknownCommand, host.Address, cmd, err))
			continue
		}
		tbl, err := p.opts.Extractor.Extract(host, cmd, raw, def)
		if err != nil {
			p.skip(res, log, cmd, err)
			continue
		}
		res.Tables[cmd] = tbl
		if err := p.opts.Store.SaveTable(host, cmd, tbl); err != nil {
			log.Warn("could not save table", "command", cmd, "error", err.Error())
		}
	}

	if !p.opts.Source.ProcessTables {
		res.State = domain.HostStateDone
		res.Succeeded = true
		return res
	}

	// Combining
	res.State = domain.HostStateCombining
	report, err := table.Combine(res.Tables, p.opts.Query, p.opts.Source)
	if err != nil {
		if errors.Is(err, table.ErrMissingInput) {
			res.Fail(domain.NewPipelineError(domain.ErrExtraction, host.Address, "", err))
		} else {
			res.Fail(domain.NewPipelineError(domain.ErrTableOperation, host.Address, "", err))
		}
		return res
	}
	res.ReportTable = report
	if err := p.opts.Store.SaveReport(host, p.opts.Source.ReportName, report); err != nil {
		log.Warn("could not save report", "error", err.Error())
	}

	res.State = domain.HostStateDone
	res.Succeeded = true
	log.Debug("host done", "rows", report.Len(), "skipped", len(res.Skipped))
	return res
}

func (p *HostPipeline) skip(res *domain.RunResult, log logx.Logger, cmd string, err error) {
	res.Skip(cmd, err)
	p.opts.Metrics.CommandSkipped(err)
	log.Warn("command skipped", "command", cmd, "error", err.Error())
}

// asSessionError garantiza que err lleve un tipo de sesión.
func asSessionError(err error, host domain.Host, cmd string) error {
	if domain.IsSessionError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewPipelineError(domain.ErrSessionTimeout, host.Address, cmd, err)
	}
	return domain.NewPipelineError(domain.ErrSession, host.Address, cmd, err)
}
