// internal/core/ports/session.go
package ports

import (
	"context"

	"netsql/internal/core/domain"
)

// SessionFactory abre sesiones interactivas contra un dispositivo.
// Errors must carry one of the domain session kinds (ErrSessionAuth,
// ErrSessionTimeout, ErrSessionProtocol, ErrSession).
type SessionFactory interface {
	Open(ctx context.Context, host domain.Host) (Session, error)
}

// Session ejecuta comandos sobre una conexión abierta.
type Session interface {
	// Run ejecuta un comando y retorna su salida en texto plano
	Run(ctx context.Context, command string) (string, error)

	// Close libera la conexión
	Close() error
}

// SessionFactoryFunc adapta una función a SessionFactory.
type SessionFactoryFunc func(ctx context.Context, host domain.Host) (Session, error)

func (f SessionFactoryFunc) Open(ctx context.Context, host domain.Host) (Session, error) {
	return f(ctx, host)
}
