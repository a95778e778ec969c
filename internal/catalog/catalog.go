// Package catalog exposes static reference data about currencies: display
// names, flags, popularity and the symbol aliases seen in rate sheets.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed currencies.yaml
var defaultCatalogYAML []byte

// Entry is one currency known to the catalog.
type Entry struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	NameUK  string   `yaml:"name_uk"`
	Flag    string   `yaml:"flag"`
	Popular bool     `yaml:"popular"`
	Major   bool     `yaml:"major"`
	Aliases []string `yaml:"aliases"`
}

type catalogFile struct {
	Currencies []Entry `yaml:"currencies"`
}

// Catalog is an immutable lookup over catalog entries.
type Catalog struct {
	ordered []Entry
	byCode  map[string]Entry
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded currency catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse builds a Catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse currency catalog: %w", err)
	}
	c := &Catalog{byCode: make(map[string]Entry, len(f.Currencies))}
	for _, e := range f.Currencies {
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		if len(e.Code) != 3 {
			return nil, fmt.Errorf("currency catalog: invalid code %q", e.Code)
		}
		if _, dup := c.byCode[e.Code]; dup {
			return nil, fmt.Errorf("currency catalog: duplicate code %s", e.Code)
		}
		c.byCode[e.Code] = e
		c.ordered = append(c.ordered, e)
	}
	return c, nil
}

// Lookup returns the entry for code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	e, ok := c.byCode[strings.ToUpper(code)]
	return e, ok
}

// Codes returns every catalog code in catalog order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.ordered))
	for i, e := range c.ordered {
		codes[i] = e.Code
	}
	return codes
}

// IsMajor reports whether code is one of the headline currencies whose branch
// overrides are never silently reverted.
func (c *Catalog) IsMajor(code string) bool {
	e, ok := c.Lookup(code)
	return ok && e.Major
}

// IsPopular reports whether code is flagged popular.
func (c *Catalog) IsPopular(code string) bool {
	e, ok := c.Lookup(code)
	return ok && e.Popular
}

// Names returns the English and Ukrainian names for code, falling back to the
// code itself.
func (c *Catalog) Names(code string) (string, string) {
	e, ok := c.Lookup(code)
	if !ok {
		return code, code
	}
	name, nameUK := e.Name, e.NameUK
	if name == "" {
		name = code
	}
	if nameUK == "" {
		nameUK = name
	}
	return name, nameUK
}

// Flag returns the flag for code or a neutral placeholder.
func (c *Catalog) Flag(code string) string {
	if e, ok := c.Lookup(code); ok && e.Flag != "" {
		return e.Flag
	}
	return "🏳️"
}

// Aliases maps lower-cased symbols to canonical codes.
func (c *Catalog) Aliases() map[string]string {
	out := make(map[string]string)
	for _, e := range c.ordered {
		for _, a := range e.Aliases {
			out[strings.ToLower(strings.TrimSpace(a))] = e.Code
		}
	}
	return out
}
