// internal/adapters/output/layout.go
package output

import (
	"path/filepath"
	"strings"
)

// Layout decide dónde se guarda cada artefacto de una ejecución.
//
//	<raw>/<host>/<command>.txt        salida cruda
//	<raw>/<host>/<command>.csv        tabla extraída
//	<report>/<host>/<name>.csv        tabla final del host (+ .parquet)
//	<report>/<name>.html|.json        agregados
type Layout struct {
	RawDir    string
	ReportDir string
}

// sanitize convierte un host o comando en un componente de ruta válido.
// Ejemplo: "show ip route" -> "show_ip_route", "fe80::1" -> "fe80__1"
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	s = r.Replace(s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

func dirOrDot(d string) string {
	if d == "" {
		return "."
	}
	return d
}

// RawPath is the capture file of one command.
func (l Layout) RawPath(host, command string) string {
	return filepath.Join(dirOrDot(l.RawDir), sanitize(host), sanitize(command)+".txt")
}

// TablePath is the extracted table of one command.
func (l Layout) TablePath(host, command string) string {
	return filepath.Join(dirOrDot(l.RawDir), sanitize(host), sanitize(command)+".csv")
}

// ReportPath is a host's report table without extension.
func (l Layout) ReportPath(host, name string) string {
	return filepath.Join(dirOrDot(l.ReportDir), sanitize(host), sanitize(name))
}

// AggregatePath is the run-wide report with ext (".html", ".json").
func (l Layout) AggregatePath(name, ext string) string {
	return filepath.Join(dirOrDot(l.ReportDir), sanitize(name)+ext)
}
