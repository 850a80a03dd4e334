// internal/platform/ui/plain_presenter.go
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

// PlainPresenter escribe texto sin colores y tablas ASCII con tablewriter.
// Pensado para --plain, pipes y logs de CI.
type PlainPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlainPresenter crea un presenter de texto plano sobre w.
func NewPlainPresenter(w io.Writer) *PlainPresenter {
	return &PlainPresenter{out: w}
}

func (p *PlainPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "query: %s\n", info.Query)
	fmt.Fprintf(p.out, "data source: %s, %s, %d worker(s)\n", info.DataSource, plural(info.Hosts, "host"), info.Workers)
	if info.NoConnect {
		fmt.Fprintln(p.out, "mode: replay (no-connect)")
	}
	fmt.Fprintln(p.out, strings.Repeat("-", 80))
}

func (p *PlainPresenter) StartHost(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Processing host: %s\n", host)
}

func (p *PlainPresenter) FinishHost(host string, status Status, duration time.Duration, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "[%s] %s (%s)", status, host, formatDuration(duration))
	if status == StatusSuccess {
		fmt.Fprintf(p.out, " %d rows", rows)
	}
	fmt.Fprintln(p.out)
}

func (p *PlainPresenter) ShowReport(view ReportView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if view.Saved != "" {
		fmt.Fprintf(p.out, "Results saved as: %s\n", view.Saved)
	}
	if notice := TruncationNotice(view.Total, view.Limit); notice != "" {
		fmt.Fprintln(p.out, notice)
	}
	if view.Total > 0 {
		tw := tablewriter.NewWriter(p.out)
		tw.SetHeader(view.Headers)
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		tw.AppendBulk(view.Rows)
		tw.Render()
	}
	fmt.Fprintln(p.out, RecordsLine(view.Total))
	fmt.Fprintln(p.out, strings.Repeat("-", 80))
}

func (p *PlainPresenter) Info(msg string)    { p.line("INFO", msg) }
func (p *PlainPresenter) Warning(msg string) { p.line("WARNING", msg) }
func (p *PlainPresenter) Error(msg string)   { p.line("ERROR", msg) }

func (p *PlainPresenter) line(tag, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s: %s\n", tag, msg)
}

func (p *PlainPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, strings.Repeat("=", 80))
	fmt.Fprintf(p.out, "duration %s, rows %d", formatDuration(stats.Duration), stats.TotalRows)
	if stats.FailedHosts > 0 {
		fmt.Fprintf(p.out, ", failed %s", plural(stats.FailedHosts, "host"))
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, CompletedLine(stats.SucceededHosts, stats.AttemptedHosts, stats.TotalHosts))
}

func (p *PlainPresenter) Close() error { return nil }
