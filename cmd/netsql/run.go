// cmd/netsql/run.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"netsql/internal/adapters/output"
	"netsql/internal/adapters/session"
	"netsql/internal/catalog"
	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/core/usecases"
	"netsql/internal/extract"
	"netsql/internal/platform/config"
	"netsql/internal/platform/logx"
	"netsql/internal/platform/metrics"
	"netsql/internal/platform/rate"
	"netsql/internal/platform/resilience"
	"netsql/internal/platform/ui"
	"netsql/internal/query"
	"netsql/internal/textfsm"
)

// passwordEnv lleva la contraseña SSH; si falta se pide por terminal.
const passwordEnv = config.EnvPrefix + "_PASSWORD"

func runQuery(cmd *cobra.Command, args []string) error {
	// 1. Config: defaults -> ENV -> flags
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
	logger.Debug("netsql starting", "version", version, "commit", commit, "workers", cfg.Workers)

	// 2. Query y catálogo, antes de tocar ningún dispositivo
	mode := query.ModeStrict
	if cfg.LenientQuery {
		mode = query.ModeLenient
	}
	q, err := query.ParseWithMode(cfg.Query, mode)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Files.Commands, cfg.Files.Sources, cfg.Files.TemplateDir)
	if err != nil {
		return err
	}
	if _, err := cat.ResolveSource(q.Source); err != nil {
		return err
	}

	hosts, err := domain.ResolveHosts(cfg.Source)
	if err != nil {
		return &usageError{err: err}
	}

	// 3. Context and signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Adapters
	store := output.NewFileStore(output.StoreOptions{
		Layout:  output.Layout{RawDir: cfg.Files.RawDir, ReportDir: cfg.Files.ReportDir},
		Parquet: cfg.Outputs.Parquet,
	}, logger)
	layout := store.Layout()

	sessions, err := buildSessions(cfg, store, logger)
	if err != nil {
		return err
	}

	var writers []ports.ReportWriter
	if cfg.Outputs.HTML {
		writers = append(writers, output.NewHTMLWriter(layout, logger))
	}
	if cfg.Outputs.JSONSummary {
		writers = append(writers, output.NewJSONWriter(layout, logger))
	}

	presenter := ui.New(ui.Options{
		Plain: cfg.Outputs.Plain,
		Quiet: !cfg.Outputs.Screen,
	})
	defer func() {
		if err := presenter.Close(); err != nil {
			logger.Debug("presenter close failed", "error", err.Error())
		}
	}()

	rec := metrics.NewRecorder()

	// 5. Run
	runner := usecases.NewRunner(usecases.RunnerOptions{
		Catalog:     cat,
		Query:       q,
		Sessions:    sessions,
		Extractor:   extract.NewAdapter(textfsm.NewCache(), logger),
		Store:       store,
		Writers:     writers,
		Presenter:   presenter,
		Metrics:     rec,
		Logger:      logger,
		Workers:     cfg.Workers,
		ScreenLines: cfg.Outputs.ScreenLines,
		KeepFull:    cfg.Outputs.HTML,
		Replay:      cfg.NoConnect,
		ReportPath: func(h domain.Host, name string) string {
			return layout.ReportPath(h.Address, name) + ".csv"
		},
	})

	summary, runErr := runner.Run(ctx, hosts)

	if err := rec.WriteTextfile(cfg.Outputs.MetricsFile); err != nil {
		logger.Warn("metrics not written", "error", err.Error())
	}

	// sin salida en pantalla el presenter no imprime la línea final
	if !cfg.Outputs.Screen {
		fmt.Fprintln(cmd.OutOrStdout(), ui.CompletedLine(summary.SucceededHosts, summary.AttemptedHosts, summary.TotalHosts))
	}

	if errors.Is(runErr, context.Canceled) && ctx.Err() != nil {
		logger.Warn("run interrupted")
	}
	return runErr
}

// buildSessions elige entre replay de capturas y SSH con reintentos.
func buildSessions(cfg config.Config, store ports.ArtifactStore, logger logx.Logger) (ports.SessionFactory, error) {
	if cfg.NoConnect {
		return session.NewCaptureFactory(store), nil
	}

	password, err := readPassword(cfg.User)
	if err != nil {
		return nil, err
	}

	ssh, err := session.NewSSHFactory(session.SSHConfig{
		User:           cfg.User,
		Password:       password,
		Port:           cfg.SSH.Port,
		DialTimeout:    cfg.SSH.DialTimeout,
		CommandTimeout: cfg.SSH.CommandTimeout,
		KnownHosts:     cfg.SSH.KnownHosts,
		StrictHostKey:  cfg.SSH.StrictHostKey,
	}, logger)
	if err != nil {
		return nil, &usageError{err: err}
	}

	// cada reintento también consume un token
	limited := rate.NewLimitedFactory(ssh, rate.New(cfg.ConnectRate, cfg.Workers))

	return resilience.NewRetryingFactory(limited, resilience.Policy{
		MaxRetries:        cfg.Resilience.MaxRetries,
		BackoffBase:       cfg.Resilience.BackoffBase,
		BackoffMultiplier: cfg.Resilience.BackoffMultiplier,
	}, logger), nil
}

func readPassword(user string) (string, error) {
	if pw, ok := os.LookupEnv(passwordEnv); ok {
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", &usageError{err: fmt.Errorf("stdin is not a terminal; set %s", passwordEnv)}
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
