// internal/adapters/output/store.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"netsql/internal/core/domain"
	"netsql/internal/platform/logx"
)

// FileStore implementa ports.ArtifactStore sobre el sistema de archivos.
type FileStore struct {
	layout  Layout
	parquet bool
	logger  logx.Logger
}

// StoreOptions configures a FileStore.
type StoreOptions struct {
	Layout  Layout
	Parquet bool // también escribe <report>.parquet
}

// NewFileStore crea el store. Los directorios se crean al escribir.
func NewFileStore(opts StoreOptions, logger logx.Logger) *FileStore {
	return &FileStore{
		layout:  opts.Layout,
		parquet: opts.Parquet,
		logger:  logger.With("component", "store"),
	}
}

// Layout returns the paths the store writes to.
func (s *FileStore) Layout() Layout {
	return s.layout
}

func (s *FileStore) SaveRaw(host domain.Host, command, raw string) error {
	path := s.layout.RawPath(host.Address, command)
	if err := writeFile(path, []byte(raw)); err != nil {
		return err
	}
	s.logger.Debug("raw output saved", "host", host.Address, "command", command, "path", path)
	return nil
}

func (s *FileStore) LoadRaw(host domain.Host, command string) (string, error) {
	path := s.layout.RawPath(host.Address, command)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load capture: %w", err)
	}
	return string(b), nil
}

func (s *FileStore) SaveTable(host domain.Host, command string, t *domain.Table) error {
	path := s.layout.TablePath(host.Address, command)
	if err := WriteCSV(path, t); err != nil {
		return err
	}
	s.logger.Debug("table saved", "host", host.Address, "command", command, "rows", t.Len(), "path", path)
	return nil
}

func (s *FileStore) SaveReport(host domain.Host, reportName string, t *domain.Table) error {
	base := s.layout.ReportPath(host.Address, reportName)
	if err := WriteCSV(base+".csv", t); err != nil {
		return err
	}
	if s.parquet {
		if err := WriteParquet(base+".parquet", t); err != nil {
			return err
		}
	}
	s.logger.Info("results saved", "host", host.Address, "path", base+".csv")
	return nil
}

// WriteCSV writes t with a header row.
func WriteCSV(path string, t *domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header row", path)
	}
	t := domain.NewTable(records[0])
	for _, r := range records[1:] {
		if err := t.Append(r); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return t, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
