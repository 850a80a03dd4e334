// internal/platform/ui/symbols.go
package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Status es el resultado visible de un host.
type Status int

const (
	StatusRunning Status = iota
	StatusSuccess
	StatusWarning // host saltado, la ejecución sigue
	StatusError   // fallo fatal, la ejecución se aborta
)

type statusLook struct {
	name   string
	symbol string
	color  pterm.Color
}

var statusLooks = map[Status]statusLook{
	StatusRunning: {"running", "⣾", pterm.FgCyan},
	StatusSuccess: {"success", "✓", pterm.FgGreen},
	StatusWarning: {"warning", "⚠", pterm.FgYellow},
	StatusError:   {"error", "✗", pterm.FgRed},
}

func (s Status) look() statusLook {
	if l, ok := statusLooks[s]; ok {
		return l
	}
	return statusLook{"unknown", "?", pterm.FgDefault}
}

func (s Status) String() string { return s.look().name }

// Symbol is the one-rune marker printed before the host.
func (s Status) Symbol() string { return s.look().symbol }

func (s Status) Style() *pterm.Style { return pterm.NewStyle(s.look().color) }

// Iconos del resumen.
const (
	IconHost    = "🖧"
	IconQuery   = "🔎"
	IconError   = "✗"
	IconSuccess = "✓"
	IconTime    = "⏱"
	IconRows    = "▤"
	IconWorkers = "⚙"
)

var (
	SeparatorHeavy = strings.Repeat("━", 80)
	SeparatorLight = strings.Repeat("─", 80)
)
