// internal/core/ports/extractor.go
package ports

// Extractor convierte texto crudo en registros usando una plantilla.
// Values are the template's value names in declaration order; every record
// has exactly len(values) fields.
type Extractor interface {
	Extract(template, raw string) (values []string, records [][]string, err error)
}
