package catalog

import (
	"embed"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// defaultCatalog bakes the shipped rule table into the binary, so the tool
// works with no filesystem dependencies beyond the target repository.
//
//go:embed rules/default.yaml
var defaultCatalog embed.FS

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed and validated exactly once
// per process lifetime. Subsequent calls share the same read-only instance.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := defaultCatalog.ReadFile("rules/default.yaml")
		if err != nil {
			defaultErr = fmt.Errorf("embedded catalog: %w", err)
			return
		}
		defaultCat, defaultErr = Parse(data)
	})
	return defaultCat, defaultErr
}

// LoadFile parses and validates a user-supplied catalog file.
func LoadFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", filename, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filename, err)
	}
	return cat, nil
}

// Parse decodes YAML, assigns bands by section, and fails fast on any
// internal inconsistency.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, &IntegrityError{Detail: fmt.Sprintf("malformed yaml: %v", err)}
	}

	for i := range cat.Framework {
		cat.Framework[i].Band = BandFramework
	}
	for i := range cat.Language {
		cat.Language[i].Band = BandLanguage
	}
	for i := range cat.Purpose {
		cat.Purpose[i].Band = BandPurpose
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// matchPath matches a glob pattern against a slash-separated relative path.
// A pattern without a separator also matches against the base name, so
// "*.go" flags root-level Go files wherever the check needs it.
func matchPath(pattern, rel string) (bool, error) {
	if ok, err := path.Match(pattern, rel); ok || err != nil {
		return ok, err
	}
	if !strings.Contains(pattern, "/") {
		return path.Match(pattern, path.Base(rel))
	}
	return false, nil
}
