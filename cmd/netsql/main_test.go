// cmd/netsql/main_test.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"netsql/internal/core/domain"
	"netsql/internal/platform/config"
	"netsql/internal/query"
	"netsql/internal/testutil"
)

func TestExitCode(t *testing.T) {
	_, parseErr := query.Parse("select from")
	require.Error(t, parseErr)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, exitOK},
		{"usage", &usageError{err: errors.New("unknown flag: --nope")}, exitUsage},
		{"invalid config", fmt.Errorf("load: %w", config.ErrInvalidConfig), exitUsage},
		{"malformed query", parseErr, exitUsage},
		{"no hosts", domain.ErrNoHosts, exitUsage},
		{"auth", domain.NewPipelineError(domain.ErrSessionAuth, "10.0.0.1", "", nil), exitFatal},
		{"unknown source", domain.ErrUnknownSource, exitFatal},
		{"table operation", domain.ErrTableOperation, exitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSourcesCommand(t *testing.T) {
	dir := t.TempDir()
	commands, sources := testutil.CatalogFiles(t, dir)

	out, err := execute(t, "sources", "--commands-file", commands, "--sources-file", sources, "--template-dir", dir)
	require.NoError(t, err)
	require.Contains(t, out, "interfaces")
	require.Contains(t, out, "show interfaces status")
	require.Contains(t, out, "(raw only)")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "netsql dev"))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, err := execute(t, "--bogus")
	require.Equal(t, exitUsage, exitCode(err))
}

func TestQuery_Replay(t *testing.T) {
	dir := t.TempDir()
	commands, sources := testutil.CatalogFiles(t, dir)
	rawDir := filepath.Join(dir, "raw")
	reportDir := filepath.Join(dir, "reports")
	for cmd, raw := range testutil.RawOutputs {
		testutil.WriteFile(t, filepath.Join(rawDir, "10.74.41.73"), strings.ReplaceAll(cmd, " ", "_")+".txt", raw)
	}

	out, err := execute(t,
		"query",
		"--no-connect",
		"-s", "10.74.41.73",
		"-q", "select Interface,Status from interfaces where Status = connected",
		"--commands-file", commands,
		"--sources-file", sources,
		"--template-dir", dir,
		"--raw-dir", rawDir,
		"--report-dir", reportDir,
		"--screen-output=false",
		"--json-summary",
		"--log-level", "error",
	)
	require.NoError(t, err)
	require.Contains(t, out, "Completed 1 of 1 hosts")

	csv, err := os.ReadFile(filepath.Join(reportDir, "10.74.41.73", "interfaces.csv"))
	require.NoError(t, err)
	require.Equal(t, "Interface,Status\nGi1/0/1,connected\nGi1/0/3,connected\n", string(csv))
	require.FileExists(t, filepath.Join(reportDir, "interfaces.json"))
}

func TestQuery_UnknownSourceBeforePassword(t *testing.T) {
	dir := t.TempDir()
	commands, sources := testutil.CatalogFiles(t, dir)
	t.Setenv(passwordEnv, "")
	require.NoError(t, os.Unsetenv(passwordEnv))

	_, err := execute(t,
		"-s", "10.0.0.1",
		"-q", "select * from vlans",
		"--commands-file", commands,
		"--sources-file", sources,
		"--template-dir", dir,
		"--screen-output=false",
		"--log-level", "error",
	)
	require.ErrorIs(t, err, domain.ErrUnknownSource, "the source is checked before any password is read")
	require.Equal(t, exitFatal, exitCode(err))
}

func TestQuery_MalformedQuery(t *testing.T) {
	_, err := execute(t, "--no-connect", "-s", "10.0.0.1", "-q", "select * form interfaces")
	require.Equal(t, exitUsage, exitCode(err))
}
