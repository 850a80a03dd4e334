// internal/core/ports/exporter.go
package ports

import (
	"context"

	"netsql/internal/core/domain"
)

// ReportWriter escribe el resumen agregado de una ejecución.
type ReportWriter interface {
	// Name identifica el formato (html, json)
	Name() string

	// Write persiste el resumen
	Write(ctx context.Context, summary domain.Summary) error
}
