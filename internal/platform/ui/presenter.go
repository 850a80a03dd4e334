// internal/platform/ui/presenter.go
package ui

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Presenter muestra el progreso de una ejecución host por host y las tablas
// de resultado en la terminal.
type Presenter interface {
	// Start muestra la cabecera con la query y el número de hosts
	Start(info RunInfo)

	// StartHost notifica que un host empezó a procesarse
	StartHost(host string)

	// FinishHost notifica el resultado de un host
	FinishHost(host string, status Status, duration time.Duration, rows int)

	// ShowReport imprime la vista truncada de la tabla de un host
	ShowReport(view ReportView)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish muestra las estadísticas finales
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo describes a run before it starts.
type RunInfo struct {
	Query      string
	DataSource string
	Hosts      int
	Workers    int
	NoConnect  bool
}

// ReportView es lo que se imprime de la tabla de un host.
type ReportView struct {
	Host    string
	Headers []string
	Rows    [][]string // ya truncadas a Limit
	Total   int        // filas de la tabla completa
	Limit   int
	Saved   string // ruta del CSV, vacía si no se guardó
}

// RunStats contiene las estadísticas finales.
type RunStats struct {
	RunID          string
	Duration       time.Duration
	TotalHosts     int
	AttemptedHosts int
	SucceededHosts int
	FailedHosts    int
	TotalRows      int
}

// Options selects and configures a presenter.
type Options struct {
	Plain  bool
	Quiet  bool
	Writer io.Writer
}

// New devuelve el presenter adecuado: Noop si Quiet, tablewriter si Plain,
// pterm en otro caso.
func New(opts Options) Presenter {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	switch {
	case opts.Quiet:
		return NewNoopPresenter()
	case opts.Plain:
		return NewPlainPresenter(w)
	default:
		return NewPTermPresenter(w)
	}
}

// TruncationNotice returns the line shown when a table has more rows than are
// printed, or "" when everything fits.
func TruncationNotice(total, limit int) string {
	if total <= limit {
		return ""
	}
	return fmt.Sprintf("Returned %d but printed only first %d. Check CSV file for full output", total, limit)
}

// RecordsLine is the per-host row count summary.
func RecordsLine(total int) string {
	return fmt.Sprintf("Returned %d record(s)", total)
}

// CompletedLine is the last line of every run. Succeeded counts against the
// hosts attempted; hosts skipped by an aborted run are named separately.
func CompletedLine(succeeded, attempted, total int) string {
	line := fmt.Sprintf("Completed %d of %d hosts", succeeded, attempted)
	if skipped := total - attempted; skipped > 0 {
		line += fmt.Sprintf(" (%d not attempted)", skipped)
	}
	return line
}
