// internal/platform/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"netsql/internal/platform/errors"
)

// EnvPrefix prefixes every environment override (NETSQL_WORKERS, ...).
const EnvPrefix = "NETSQL"

// ErrInvalidConfig is returned for unusable flag combinations.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Query
	Query        string
	Source       string // IP literal o fichero con lista de hosts
	LenientQuery bool

	// Session
	User      string
	NoConnect bool
	SSH       SSH

	Workers int
	// ConnectRate: sesiones nuevas por segundo entre todos los workers, 0 = sin límite
	ConnectRate float64

	Files   Files
	Outputs Outputs

	Resilience Resilience

	LogLevel string
}

type SSH struct {
	Port           int
	DialTimeout    time.Duration
	CommandTimeout time.Duration
	KnownHosts     string
	StrictHostKey  bool
}

type Files struct {
	Commands    string
	Sources     string
	TemplateDir string
	RawDir      string
	ReportDir   string
}

type Outputs struct {
	Screen      bool
	ScreenLines int
	HTML        bool
	Parquet     bool
	JSONSummary bool
	Plain       bool
	MetricsFile string
}

type Resilience struct {
	MaxRetries        int
	BackoffBase       time.Duration
	BackoffMultiplier float64
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Workers: 1,
		SSH: SSH{
			Port:           22,
			DialTimeout:    15 * time.Second,
			CommandTimeout: 60 * time.Second,
		},
		Files: Files{
			Commands:  "command_definitions.json",
			Sources:   "data_source_definitions.json",
			RawDir:    "raw_data",
			ReportDir: "reports",
		},
		Outputs: Outputs{
			Screen:      true,
			ScreenLines: 10,
		},
		Resilience: Resilience{
			MaxRetries:        0,
			BackoffBase:       1 * time.Second,
			BackoffMultiplier: 2.0,
		},
		LogLevel: "info",
	}
}

// RegisterFlags declara los flags del comando query sobre fs con los
// valores por defecto de DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	fs.StringP("query", "q", d.Query, `query, e.g. "select Interface,Status from interfaces where Status = connected"`)
	fs.StringP("source", "s", d.Source, "device IP address or file with one address per line")
	fs.Bool("lenient-query", d.LenientQuery, "keep conditions parsed before the first malformed one instead of failing")

	fs.StringP("user", "u", d.User, "username for device sessions")
	fs.Bool("no-connect", d.NoConnect, "replay raw captures from the raw data directory instead of connecting")
	fs.Int("port", d.SSH.Port, "SSH port")
	fs.Duration("dial-timeout", d.SSH.DialTimeout, "SSH connect timeout")
	fs.Duration("command-timeout", d.SSH.CommandTimeout, "per-command timeout")
	fs.String("known-hosts", d.SSH.KnownHosts, "known_hosts file used to verify host keys")
	fs.Bool("strict-host-key", d.SSH.StrictHostKey, "refuse hosts whose key is not in known_hosts")

	fs.IntP("workers", "w", d.Workers, "hosts processed concurrently")
	fs.Float64("connect-rate", d.ConnectRate, "new device sessions per second across workers (0 = unlimited)")

	fs.String("commands-file", d.Files.Commands, "command definitions file (JSON or YAML)")
	fs.String("sources-file", d.Files.Sources, "data source definitions file (JSON or YAML)")
	fs.String("template-dir", d.Files.TemplateDir, "directory relative template paths resolve against")
	fs.String("raw-dir", d.Files.RawDir, "directory for raw captures and per-command tables")
	fs.String("report-dir", d.Files.ReportDir, "directory for reports")

	fs.Bool("screen-output", d.Outputs.Screen, "print report rows to the console")
	fs.Int("screen-lines", d.Outputs.ScreenLines, "rows printed per host")
	fs.Bool("html-output", d.Outputs.HTML, "write an aggregate HTML report")
	fs.Bool("parquet-output", d.Outputs.Parquet, "also write per-host reports as parquet")
	fs.Bool("json-summary", d.Outputs.JSONSummary, "write a JSON run summary")
	fs.Bool("plain", d.Outputs.Plain, "plain console output without colors")
	fs.String("metrics-file", d.Outputs.MetricsFile, "write run metrics in Prometheus text format to this file")

	fs.Int("retries", d.Resilience.MaxRetries, "connection retries on timeout or protocol errors")
	fs.Duration("retry-backoff", d.Resilience.BackoffBase, "base backoff between connection retries")

	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
}

// Load inicializa la configuración: defaults -> ENV (NETSQL_*) -> FLAGS.
// Flags explícitos tienen prioridad sobre ENV.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	cfg.Query = v.GetString("query")
	cfg.Source = v.GetString("source")
	cfg.LenientQuery = v.GetBool("lenient-query")

	cfg.User = v.GetString("user")
	cfg.NoConnect = v.GetBool("no-connect")
	cfg.SSH.Port = v.GetInt("port")
	cfg.SSH.DialTimeout = v.GetDuration("dial-timeout")
	cfg.SSH.CommandTimeout = v.GetDuration("command-timeout")
	cfg.SSH.KnownHosts = v.GetString("known-hosts")
	cfg.SSH.StrictHostKey = v.GetBool("strict-host-key")

	cfg.Workers = v.GetInt("workers")
	cfg.ConnectRate = v.GetFloat64("connect-rate")

	cfg.Files.Commands = v.GetString("commands-file")
	cfg.Files.Sources = v.GetString("sources-file")
	cfg.Files.TemplateDir = v.GetString("template-dir")
	cfg.Files.RawDir = v.GetString("raw-dir")
	cfg.Files.ReportDir = v.GetString("report-dir")

	cfg.Outputs.Screen = v.GetBool("screen-output")
	cfg.Outputs.ScreenLines = v.GetInt("screen-lines")
	cfg.Outputs.HTML = v.GetBool("html-output")
	cfg.Outputs.Parquet = v.GetBool("parquet-output")
	cfg.Outputs.JSONSummary = v.GetBool("json-summary")
	cfg.Outputs.Plain = v.GetBool("plain")
	cfg.Outputs.MetricsFile = v.GetString("metrics-file")

	cfg.Resilience.MaxRetries = v.GetInt("retries")
	cfg.Resilience.BackoffBase = v.GetDuration("retry-backoff")

	cfg.LogLevel = v.GetString("log-level")

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate comprueba los campos obligatorios.
func (c Config) Validate() error {
	switch {
	case c.Query == "":
		return errors.Wrap(ErrInvalidConfig, "--query is required")
	case c.Source == "":
		return errors.Wrap(ErrInvalidConfig, "--source is required")
	case c.User == "" && !c.NoConnect:
		return errors.Wrap(ErrInvalidConfig, "--user is required unless --no-connect is set")
	case c.SSH.Port < 1 || c.SSH.Port > 65535:
		return errors.Wrap(ErrInvalidConfig, fmt.Sprintf("--port %d out of range", c.SSH.Port))
	}
	return nil
}

func normalize(c *Config) {
	c.Query = strings.TrimSpace(c.Query)
	c.Source = strings.TrimSpace(c.Source)
	c.User = strings.TrimSpace(c.User)
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.ConnectRate < 0 {
		c.ConnectRate = 0
	}
	if c.Outputs.ScreenLines < 0 {
		c.Outputs.ScreenLines = 0
	}
	if c.SSH.DialTimeout < 0 {
		c.SSH.DialTimeout = 0
	}
	if c.SSH.CommandTimeout < 0 {
		c.SSH.CommandTimeout = 0
	}
	if c.Resilience.MaxRetries < 0 {
		c.Resilience.MaxRetries = 0
	}
	if c.Resilience.BackoffBase < 0 {
		c.Resilience.BackoffBase = 1 * time.Second
	}
	if c.Resilience.BackoffMultiplier < 1.0 {
		c.Resilience.BackoffMultiplier = 2.0
	}
	if c.Files.RawDir == "" {
		c.Files.RawDir = "raw_data"
	}
	if c.Files.ReportDir == "" {
		c.Files.ReportDir = "reports"
	}
}
