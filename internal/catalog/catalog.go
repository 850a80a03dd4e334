// internal/catalog/catalog.go
package catalog

import (
	"fmt"
	"path/filepath"

	"netsql/internal/core/domain"
)

// Catalog resolves data source names and commands. It is built once and
// never modified; every accessor returns copies.
type Catalog struct {
	commands    map[string]domain.CommandDefinition
	commandList []string
	sources     map[string]domain.SourceDefinition
	sourceList  []string
	templateDir string
}

// Options configura la construcción del catálogo.
type Options struct {
	// TemplateDir resuelve rutas de plantilla relativas
	TemplateDir string
}

// New valida e indexa las definiciones.
func New(commands []domain.CommandDefinition, sources []domain.SourceDefinition, opts Options) (*Catalog, error) {
	c := &Catalog{
		commands:    make(map[string]domain.CommandDefinition, len(commands)),
		sources:     make(map[string]domain.SourceDefinition, len(sources)),
		templateDir: opts.TemplateDir,
	}

	for i, def := range commands {
		if def.Command == "" {
			return nil, invalid("command definition %d has an empty command", i)
		}
		if _, dup := c.commands[def.Command]; dup {
			return nil, invalid("duplicate command definition %q", def.Command)
		}
		if len(def.Headers) == 0 && def.Template != "" {
			return nil, invalid("command %q has a template but no headers", def.Command)
		}
		c.commands[def.Command] = copyCommand(def)
		c.commandList = append(c.commandList, def.Command)
	}

	for i, src := range sources {
		src = copySource(src)
		if err := prepareSource(i, &src); err != nil {
			return nil, err
		}
		if _, dup := c.sources[src.Name]; dup {
			return nil, invalid("duplicate data source %q", src.Name)
		}
		c.sources[src.Name] = src
		c.sourceList = append(c.sourceList, src.Name)
	}

	return c, nil
}

// prepareSource validates src and fills in its JoinSpec.
func prepareSource(i int, src *domain.SourceDefinition) error {
	if src.Name == "" {
		return invalid("data source %d has no name", i)
	}
	if len(src.Commands) == 0 {
		return invalid("data source %q has no commands", src.Name)
	}
	if src.ProcessTables && src.ReportName == "" {
		return invalid("data source %q processes tables but has no report_file_name", src.Name)
	}
	if !src.JoinTables {
		src.Join = nil
		return nil
	}

	if src.Join == nil {
		if src.CommonColumn == "" {
			return invalid("data source %q joins tables but has no common_column", src.Name)
		}
		if len(src.Commands) < 2 {
			return invalid("data source %q joins tables but has %d command", src.Name, len(src.Commands))
		}
		src.Join = &domain.JoinSpec{Left: src.Commands[0], Right: src.Commands[1], On: src.CommonColumn}
	}

	j := src.Join
	if j.On == "" {
		return invalid("data source %q has a join without a column", src.Name)
	}
	if j.Left == j.Right {
		return invalid("data source %q joins %q with itself", src.Name, j.Left)
	}
	for _, side := range []string{j.Left, j.Right} {
		if !contains(src.Commands, side) {
			return invalid("data source %q joins %q which is not one of its commands", src.Name, side)
		}
	}
	if src.CommonColumn == "" {
		src.CommonColumn = j.On
	}
	return nil
}

// ResolveSource busca una fuente por nombre exacto.
func (c *Catalog) ResolveSource(name string) (domain.SourceDefinition, error) {
	src, ok := c.sources[name]
	if !ok {
		return domain.SourceDefinition{}, fmt.Errorf("%w: %q", domain.ErrUnknownSource, name)
	}
	return copySource(src), nil
}

// ResolveCommand returns the definition of command with its template path
// resolved against the template directory. A command without a definition or
// without a template is ErrUnknownCommand.
func (c *Catalog) ResolveCommand(command string) (domain.CommandDefinition, error) {
	def, ok := c.commands[command]
	if !ok || def.Template == "" {
		return domain.CommandDefinition{}, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, command)
	}
	def = copyCommand(def)
	if c.templateDir != "" && !filepath.IsAbs(def.Template) {
		def.Template = filepath.Join(c.templateDir, def.Template)
	}
	return def, nil
}

// Sources lista las fuentes en el orden del fichero.
func (c *Catalog) Sources() []domain.SourceDefinition {
	out := make([]domain.SourceDefinition, 0, len(c.sourceList))
	for _, name := range c.sourceList {
		out = append(out, copySource(c.sources[name]))
	}
	return out
}

// Commands lista las definiciones de comando en el orden del fichero.
func (c *Catalog) Commands() []domain.CommandDefinition {
	out := make([]domain.CommandDefinition, 0, len(c.commandList))
	for _, cmd := range c.commandList {
		out = append(out, copyCommand(c.commands[cmd]))
	}
	return out
}

func copyCommand(def domain.CommandDefinition) domain.CommandDefinition {
	def.Headers = append([]string(nil), def.Headers...)
	return def
}

func copySource(src domain.SourceDefinition) domain.SourceDefinition {
	src.Commands = append([]string(nil), src.Commands...)
	if src.Join != nil {
		j := *src.Join
		src.Join = &j
	}
	return src
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, fmt.Sprintf(format, args...))
}
