// internal/adapters/session/capture.go
package session

import (
	"context"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
)

// CaptureFactory replays raw output saved by a previous run instead of
// connecting (--no-connect).
type CaptureFactory struct {
	store ports.ArtifactStore
}

// NewCaptureFactory reads captures from store.
func NewCaptureFactory(store ports.ArtifactStore) *CaptureFactory {
	return &CaptureFactory{store: store}
}

// Open never fails; missing captures surface per command.
func (f *CaptureFactory) Open(ctx context.Context, host domain.Host) (ports.Session, error) {
	return &captureSession{store: f.store, host: host}, nil
}

type captureSession struct {
	store ports.ArtifactStore
	host  domain.Host
}

func (s *captureSession) Run(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewPipelineError(domain.ErrSessionTimeout, s.host.Address, command, err)
	}
	raw, err := s.store.LoadRaw(s.host, command)
	if err != nil {
		return "", domain.NewPipelineError(domain.ErrExtraction, s.host.Address, command, err)
	}
	return raw, nil
}

func (s *captureSession) Close() error { return nil }
