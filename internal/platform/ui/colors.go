// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de la consola
var (
	// LeafGreen - filas devueltas, hosts completados
	LeafGreen = pterm.NewRGB(46, 160, 67)

	// SignalRed - cero filas, errores
	SignalRed = pterm.NewRGB(215, 38, 56)

	// AmberWarn - hosts saltados, advertencias
	AmberWarn = pterm.NewRGB(255, 182, 39)

	// CableGray - texto secundario
	CableGray = pterm.NewRGB(120, 120, 120)

	// PortCyan - nombres de host, acentos
	PortCyan = pterm.NewRGB(0, 170, 190)
)

// Estilos preconfigurados
var (
	StyleSuccess   = LeafGreen.ToRGBStyle()
	StyleError     = SignalRed.ToRGBStyle()
	StyleWarning   = AmberWarn.ToRGBStyle()
	StyleSecondary = CableGray.ToRGBStyle()
	StyleAccent    = PortCyan.ToRGBStyle()
)
