// internal/core/ports/repository.go
package ports

import (
	"netsql/internal/core/domain"
)

// ArtifactStore es el port para persistir capturas y tablas por host.
type ArtifactStore interface {
	// SaveRaw guarda la salida cruda de un comando
	SaveRaw(host domain.Host, command, raw string) error

	// LoadRaw recupera una captura guardada previamente (modo no-connect)
	LoadRaw(host domain.Host, command string) (string, error)

	// SaveTable guarda la tabla extraída de un comando
	SaveTable(host domain.Host, command string, t *domain.Table) error

	// SaveReport guarda la tabla final de un host
	SaveReport(host domain.Host, reportName string, t *domain.Table) error
}
