// internal/platform/metrics/metrics.go
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"netsql/internal/core/domain"
)

const namespace = "netsql"

// Recorder cuenta hosts, comandos y filas de una ejecución. Usa un registry
// propio, nada se registra en el global.
type Recorder struct {
	registry *prometheus.Registry

	HostsTotal      prometheus.Counter
	HostsSucceeded  prometheus.Counter
	HostsFailed     *prometheus.CounterVec // label: reason
	CommandsRun     prometheus.Counter
	CommandsSkipped *prometheus.CounterVec // label: reason
	ReportRows      prometheus.Counter
	HostDuration    prometheus.Histogram
}

// NewRecorder creates and registers every collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		HostsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hosts_total",
			Help:      "Hosts attempted.",
		}),
		HostsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hosts_succeeded_total",
			Help:      "Hosts that completed the pipeline.",
		}),
		HostsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hosts_failed_total",
			Help:      "Hosts that failed, by error kind.",
		}, []string{"reason"}),
		CommandsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_run_total",
			Help:      "Device commands executed.",
		}),
		CommandsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_skipped_total",
			Help:      "Commands whose output was not turned into a table, by error kind.",
		}, []string{"reason"}),
		ReportRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_rows_total",
			Help:      "Rows in per-host report tables.",
		}),
		HostDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "host_duration_seconds",
			Help:      "Wall time spent per host.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}

	r.registry.MustRegister(
		r.HostsTotal,
		r.HostsSucceeded,
		r.HostsFailed,
		r.CommandsRun,
		r.CommandsSkipped,
		r.ReportRows,
		r.HostDuration,
	)
	return r
}

// Registry exposes the private registry (tests, textfile export).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile vuelca las métricas en formato de texto de Prometheus, para
// el textfile collector de node_exporter.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// Los helpers aceptan un *Recorder nil para que las métricas sean opcionales.

// CommandRun counts one executed command.
func (r *Recorder) CommandRun() {
	if r == nil {
		return
	}
	r.CommandsRun.Inc()
}

// CommandSkipped counts a command dropped for reason err.
func (r *Recorder) CommandSkipped(err error) {
	if r == nil {
		return
	}
	r.CommandsSkipped.WithLabelValues(Reason(err)).Inc()
}

// HostDone records the outcome of one attempted host.
func (r *Recorder) HostDone(err error, rows int, d time.Duration) {
	if r == nil {
		return
	}
	r.HostsTotal.Inc()
	r.HostDuration.Observe(d.Seconds())
	if err != nil {
		r.HostsFailed.WithLabelValues(Reason(err)).Inc()
		return
	}
	r.HostsSucceeded.Inc()
	r.ReportRows.Add(float64(rows))
}

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrSessionAuth):
		return "auth"
	case errors.Is(err, domain.ErrSessionTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrSessionProtocol):
		return "protocol"
	case errors.Is(err, domain.ErrSession):
		return "session"
	case errors.Is(err, domain.ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, domain.ErrExtraction):
		return "extraction"
	case errors.Is(err, domain.ErrTableOperation):
		return "table_operation"
	default:
		return "other"
	}
}
