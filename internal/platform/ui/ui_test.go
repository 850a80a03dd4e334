// internal/platform/ui/ui_test.go
package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTruncationNotice(t *testing.T) {
	require.Equal(t, "", TruncationNotice(3, 10))
	require.Equal(t, "", TruncationNotice(10, 10))
	require.Equal(t, "Returned 11 but printed only first 10. Check CSV file for full output", TruncationNotice(11, 10))
}

func TestRecordsAndCompletedLines(t *testing.T) {
	require.Equal(t, "Returned 0 record(s)", RecordsLine(0))
	require.Equal(t, "Completed 1 of 2 hosts", CompletedLine(1, 2, 2))
	require.Equal(t, "Completed 0 of 1 hosts (4 not attempted)", CompletedLine(0, 1, 5))
}

func TestPlainPresenter_ShowReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPresenter(&buf)

	p.ShowReport(ReportView{
		Host:    "10.0.0.1",
		Headers: []string{"Interface", "Status"},
		Rows:    [][]string{{"Gi1/0/1", "connected"}},
		Total:   3,
		Limit:   1,
		Saved:   "reports/10.0.0.1/interfaces.csv",
	})

	out := buf.String()
	require.Contains(t, out, "Results saved as: reports/10.0.0.1/interfaces.csv")
	require.Contains(t, out, "printed only first 1")
	require.Contains(t, out, "Interface")
	require.Contains(t, out, "Gi1/0/1")
	require.Contains(t, out, "Returned 3 record(s)")
}

func TestPlainPresenter_EmptyReportHasNoTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPresenter(&buf)

	p.ShowReport(ReportView{Host: "h", Headers: []string{"Interface"}, Total: 0, Limit: 10})

	out := buf.String()
	require.NotContains(t, out, "Interface")
	require.Contains(t, out, "Returned 0 record(s)")
}

func TestPlainPresenter_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPresenter(&buf)

	p.Start(RunInfo{Query: "select * from ports", DataSource: "ports", Hosts: 2, Workers: 1})
	p.StartHost("10.0.0.1")
	p.FinishHost("10.0.0.1", StatusSuccess, 1500*time.Millisecond, 4)
	p.StartHost("10.0.0.2")
	p.Warning("Timeout while connecting to 10.0.0.2. Skipping.")
	p.FinishHost("10.0.0.2", StatusWarning, time.Second, 0)
	p.Finish(RunStats{TotalHosts: 2, AttemptedHosts: 2, SucceededHosts: 1, FailedHosts: 1, TotalRows: 4})
	require.NoError(t, p.Close())

	out := buf.String()
	require.Contains(t, out, "2 hosts, 1 worker(s)")
	require.Contains(t, out, "[success] 10.0.0.1 (1.5s) 4 rows")
	require.Contains(t, out, "WARNING: Timeout while connecting")
	require.Contains(t, out, "failed 1 host")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "Completed 1 of 2 hosts", lines[len(lines)-1])
}

func TestPTermPresenter_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPTermPresenter(&buf)

	p.ShowReport(ReportView{Host: "h", Headers: []string{"Port"}, Rows: [][]string{{"Gi1/0/1"}}, Total: 1, Limit: 10})
	p.Finish(RunStats{TotalHosts: 1, AttemptedHosts: 1, SucceededHosts: 1, TotalRows: 1})

	out := buf.String()
	require.Contains(t, out, "Gi1/0/1")
	require.Contains(t, out, "Returned 1 record(s)")
	require.Contains(t, out, "Completed 1 of 1 hosts")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	require.IsType(t, &NoopPresenter{}, New(Options{Quiet: true, Writer: &buf}))
	require.IsType(t, &PlainPresenter{}, New(Options{Plain: true, Writer: &buf}))
	require.IsType(t, &PTermPresenter{}, New(Options{Writer: &buf}))
}

func TestStatus(t *testing.T) {
	require.Equal(t, "✓", StatusSuccess.Symbol())
	require.Equal(t, "warning", StatusWarning.String())
	require.Equal(t, "unknown", Status(99).String())
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	require.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
	require.Equal(t, "1m5s", formatDuration(65*time.Second))
}
