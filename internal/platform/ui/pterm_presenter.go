// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando pterm para colores, tablas y
// símbolos de estado.
type PTermPresenter struct {
	mu  sync.Mutex
	out io.Writer

	info      RunInfo
	startTime time.Time
	started   map[string]time.Time
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(w io.Writer) *PTermPresenter {
	return &PTermPresenter{
		out:     w,
		started: make(map[string]time.Time),
	}
}

func (p *PTermPresenter) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Start muestra la cabecera de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.startTime = time.Now()

	p.println(pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint("netsql"))

	body := fmt.Sprintf("%s Query: %s\n", IconQuery, StyleAccent.Sprint(info.Query))
	body += fmt.Sprintf("   Data source: %s\n", pterm.Yellow(info.DataSource))
	body += fmt.Sprintf("%s Hosts: %d\n", IconHost, info.Hosts)
	body += fmt.Sprintf("%s Workers: %d", IconWorkers, info.Workers)
	if info.NoConnect {
		body += "\n   Mode: " + pterm.Yellow("replay (no-connect)")
	}

	p.println(pterm.DefaultBox.
		WithTitle("Run").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(body))
	p.println()
}

// StartHost imprime la línea "Processing host"
func (p *PTermPresenter) StartHost(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started[host] = time.Now()
	p.println(StatusRunning.Style().Sprintf("%s Processing host: %s", StatusRunning.Symbol(), StyleAccent.Sprint(host)))
}

// FinishHost renderiza la línea final del host
func (p *PTermPresenter) FinishHost(host string, status Status, duration time.Duration, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.started, host)

	line := fmt.Sprintf("%s %s", status.Symbol(), host)
	if duration > 0 {
		line += fmt.Sprintf(" (%s)", formatDuration(duration))
	}
	if status == StatusSuccess {
		line += fmt.Sprintf(" %s %d rows", IconRows, rows)
	}
	p.println(status.Style().Sprint(line))
}

// ShowReport imprime la tabla truncada de un host con el conteo coloreado:
// verde si hubo filas, rojo si no.
func (p *PTermPresenter) ShowReport(view ReportView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if view.Saved != "" {
		p.println("Results saved as:", view.Saved)
	}
	if notice := TruncationNotice(view.Total, view.Limit); notice != "" {
		p.println(notice)
	}

	if view.Total == 0 {
		p.println(StyleError.Sprint(RecordsLine(0)))
		p.println(pterm.Gray(SeparatorLight))
		return
	}

	data := pterm.TableData{view.Headers}
	data = append(data, view.Rows...)
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		p.println(pterm.Error.Sprintf("render table for %s: %v", view.Host, err))
	} else {
		p.println(rendered)
	}
	p.println(StyleSuccess.Sprint(RecordsLine(view.Total)))
	p.println(pterm.Gray(SeparatorLight))
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(pterm.Info.Sprint(msg))
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(pterm.Warning.Sprint(msg))
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(pterm.Error.Sprint(msg))
}

// Finish muestra el panel de estadísticas y la línea "Completed"
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.println()
	p.println(pterm.LightBlue(SeparatorHeavy))

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.Duration)))
	content += fmt.Sprintf("%s Succeeded: %s\n", IconSuccess, pterm.Green(plural(stats.SucceededHosts, "host")))
	if stats.FailedHosts > 0 {
		content += fmt.Sprintf("%s Failed: %s\n", IconError, pterm.Red(plural(stats.FailedHosts, "host")))
	}
	content += fmt.Sprintf("%s Rows: %s", IconRows, pterm.Cyan(fmt.Sprintf("%d", stats.TotalRows)))
	if stats.RunID != "" {
		content += "\n   Run: " + pterm.Gray(stats.RunID)
	}

	p.println(pterm.DefaultBox.
		WithTitle("Summary").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Sprint(content))

	p.println(CompletedLine(stats.SucceededHosts, stats.AttemptedHosts, stats.TotalHosts))
}

// Close no tiene recursos que liberar
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = make(map[string]time.Time)
	return nil
}
