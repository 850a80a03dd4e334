// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netsql/internal/catalog"
	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/extract"
	"netsql/internal/platform/ui"
	"netsql/internal/testutil"
	"netsql/internal/textfsm"
)

// mockDevice describe cómo responde un host en los tests.
type mockDevice struct {
	openErr  error
	outputs  map[string]string
	runErr   map[string]error
	delay    time.Duration
	closedMu sync.Mutex
	closed   bool
}

// mockSessions es un ports.SessionFactory en memoria.
type mockSessions struct {
	mu      sync.Mutex
	devices map[string]*mockDevice
	opened  []string
}

func newMockSessions() *mockSessions {
	return &mockSessions{devices: make(map[string]*mockDevice)}
}

func (m *mockSessions) device(addr string) *mockDevice {
	d := &mockDevice{outputs: testutil.RawOutputs, runErr: map[string]error{}}
	m.devices[addr] = d
	return d
}

func (m *mockSessions) Open(ctx context.Context, host domain.Host) (ports.Session, error) {
	m.mu.Lock()
	m.opened = append(m.opened, host.Address)
	d, ok := m.devices[host.Address]
	m.mu.Unlock()

	if !ok {
		return nil, domain.NewPipelineError(domain.ErrSession, host.Address, "", fmt.Errorf("no such device"))
	}
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, domain.NewPipelineError(domain.ErrSessionTimeout, host.Address, "", ctx.Err())
		}
	}
	if d.openErr != nil {
		return nil, domain.NewPipelineError(d.openErr, host.Address, "", fmt.Errorf("%v", d.openErr))
	}
	return &mockSession{dev: d}, nil
}

func (m *mockSessions) openedHosts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

type mockSession struct {
	dev *mockDevice
}

func (s *mockSession) Run(ctx context.Context, command string) (string, error) {
	if err, ok := s.dev.runErr[command]; ok {
		return "", err
	}
	out, ok := s.dev.outputs[command]
	if !ok {
		return "% Invalid input detected\n", nil
	}
	return out, nil
}

func (s *mockSession) Close() error {
	s.dev.closedMu.Lock()
	s.dev.closed = true
	s.dev.closedMu.Unlock()
	return nil
}

// memStore es un ports.ArtifactStore en memoria.
type memStore struct {
	mu      sync.Mutex
	raw     map[string]string
	tables  map[string]*domain.Table
	reports map[string]*domain.Table
}

func newMemStore() *memStore {
	return &memStore{
		raw:     map[string]string{},
		tables:  map[string]*domain.Table{},
		reports: map[string]*domain.Table{},
	}
}

func key(h domain.Host, name string) string { return h.Address + "|" + name }

func (m *memStore) SaveRaw(h domain.Host, command, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[key(h, command)] = raw
	return nil
}

func (m *memStore) LoadRaw(h domain.Host, command string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.raw[key(h, command)]
	if !ok {
		return "", fmt.Errorf("no capture for %q", command)
	}
	return raw, nil
}

func (m *memStore) SaveTable(h domain.Host, command string, t *domain.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[key(h, command)] = t
	return nil
}

func (m *memStore) SaveReport(h domain.Host, name string, t *domain.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[key(h, name)] = t
	return nil
}

// recordingWriter es un ports.ReportWriter que guarda el summary.
type recordingWriter struct {
	calls   int
	summary domain.Summary
}

func (w *recordingWriter) Name() string { return "recording" }

func (w *recordingWriter) Write(ctx context.Context, s domain.Summary) error {
	w.calls++
	w.summary = s
	return nil
}

// recordingPresenter guarda los eventos recibidos.
type recordingPresenter struct {
	ui.NoopPresenter
	mu       sync.Mutex
	finished map[string]ui.Status
	reports  []ui.ReportView
	warnings []string
	errors   []string
	stats    ui.RunStats
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{finished: map[string]ui.Status{}}
}

func (p *recordingPresenter) FinishHost(host string, status ui.Status, d time.Duration, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished[host] = status
}

func (p *recordingPresenter) ShowReport(v ui.ReportView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, v)
}

func (p *recordingPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warnings = append(p.warnings, msg)
}

func (p *recordingPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, msg)
}

func (p *recordingPresenter) Finish(s ui.RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = s
}

// fixtureCatalog carga el catálogo de testutil con sus plantillas.
func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	commands, sources := testutil.CatalogFiles(t, dir)
	c, err := catalog.Load(commands, sources, dir)
	require.NoError(t, err)
	return c
}

func fixtureExtractor() *extract.Adapter {
	return extract.NewAdapter(textfsm.NewCache(), testutil.NewTestLogger())
}

func hosts(addrs ...string) []domain.Host {
	out := make([]domain.Host, len(addrs))
	for i, a := range addrs {
		out[i] = domain.Host{Address: a, Index: i}
	}
	return out
}
