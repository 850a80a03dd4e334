// internal/textfsm/cache.go
package textfsm

import (
	"os"
	"sync"

	"netsql/internal/platform/errors"
)

// Cache compiles each template file once and implements ports.Extractor.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*Template
	open      func(path string) (*os.File, error)
}

// NewCache crea una caché vacía.
func NewCache() *Cache {
	return &Cache{templates: make(map[string]*Template), open: os.Open}
}

// Get returns the compiled template at path, compiling it on first use.
func (c *Cache) Get(path string) (*Template, error) {
	c.mu.RLock()
	t, ok := c.templates[path]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.templates[path]; ok {
		return t, nil
	}

	f, err := c.open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open template")
	}
	defer f.Close()

	t, err = ParseTemplate(f)
	if err != nil {
		return nil, errors.Wrapf(err, "compile template %s", path)
	}
	c.templates[path] = t
	return t, nil
}

// Len returns the number of compiled templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Extract parses raw with the template at path.
func (c *Cache) Extract(path, raw string) ([]string, [][]string, error) {
	t, err := c.Get(path)
	if err != nil {
		return nil, nil, err
	}
	records, err := t.ParseText(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parse with %s", path)
	}
	return t.Header(), records, nil
}
