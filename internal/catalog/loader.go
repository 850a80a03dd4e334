// internal/catalog/loader.go
package catalog

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"netsql/internal/core/domain"
	"netsql/internal/platform/errors"
)

// Load lee los ficheros de comandos y fuentes. Both may be JSON or YAML.
func Load(commandsPath, sourcesPath, templateDir string) (*Catalog, error) {
	var commands []domain.CommandDefinition
	if err := decodeFile(commandsPath, &commands); err != nil {
		return nil, err
	}

	var sources []domain.SourceDefinition
	if err := decodeFile(sourcesPath, &sources); err != nil {
		return nil, err
	}

	return New(commands, sources, Options{TemplateDir: templateDir})
}

func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "open %s", path), domain.ErrInvalidCatalog)
	}
	defer f.Close()

	if err := Decode(f, out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Decode reads one YAML (or JSON) document into out. Unknown keys are
// rejected so a typo in a definition file does not go unnoticed.
func Decode(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return errors.Wrap(domain.ErrInvalidCatalog, "empty definition file")
		}
		return errors.Mark(err, domain.ErrInvalidCatalog)
	}
	return nil
}
