// internal/extract/adapter.go
package extract

import (
	"fmt"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/platform/logx"
)

// Adapter turns raw command output into a table using the command's
// template and headers.
type Adapter struct {
	extractor ports.Extractor
	logger    logx.Logger
}

// NewAdapter crea un adaptador de extracción.
func NewAdapter(extractor ports.Extractor, logger logx.Logger) *Adapter {
	if logger == nil {
		logger = logx.New()
	}
	return &Adapter{
		extractor: extractor,
		logger:    logger.With("component", "extract"),
	}
}

// Extract converts raw into a table whose headers are def.Headers. Template
// values map onto headers by position. Every cell is normalized.
func (a *Adapter) Extract(host domain.Host, command, raw string, def domain.CommandDefinition) (*domain.Table, error) {
	if def.Template == "" {
		return nil, domain.NewPipelineError(domain.ErrUnknownCommand, host.Address, command, nil)
	}

	values, records, err := a.extractor.Extract(def.Template, raw)
	if err != nil {
		return nil, domain.NewPipelineError(domain.ErrExtraction, host.Address, command, err)
	}
	if len(values) != len(def.Headers) {
		return nil, domain.NewPipelineError(domain.ErrExtraction, host.Address, command,
			fmt.Errorf("template yields %d values, command defines %d headers", len(values), len(def.Headers)))
	}

	t := domain.NewTable(def.Headers)
	if err := t.Validate(); err != nil {
		return nil, domain.NewPipelineError(domain.ErrExtraction, host.Address, command, err)
	}
	for i, rec := range records {
		row := make([]string, len(rec))
		for j, cell := range rec {
			row[j] = Normalize(cell)
		}
		if err := t.Append(row); err != nil {
			return nil, domain.NewPipelineError(domain.ErrExtraction, host.Address, command,
				fmt.Errorf("record %d: %w", i, err))
		}
	}

	a.logger.Debug("extracted table", "host", host.Address, "command", command, "rows", t.Len())
	return t, nil
}
