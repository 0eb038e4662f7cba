// Package catalog holds the versioned rule table: classification rules per
// priority band, canonical directory templates per label, and the
// anti-pattern predicate configuration. The catalog is loaded once per
// process and shared read-only by all analyses.
package catalog

import (
	"fmt"

	"repolens/internal/fingerprint"
)

// Band is the rule priority band. Lower is higher priority: any framework
// match wins outright over any number of language or purpose matches.
type Band int

const (
	BandFramework Band = iota
	BandLanguage
	BandPurpose
)

func (b Band) String() string {
	switch b {
	case BandFramework:
		return "framework"
	case BandLanguage:
		return "language"
	default:
		return "purpose"
	}
}

// Signal is what a rule checks against the fingerprint. Exactly one field
// group applies: a marker file, a dependency key inside a manifest, or a
// path pattern.
type Signal struct {
	// MarkerFile matches presence of the exact relative path. A trailing
	// "/" requires a directory.
	MarkerFile string `yaml:"marker_file,omitempty"`
	// Manifest plus DependencyKey match a declared dependency name.
	Manifest      string `yaml:"manifest,omitempty"`
	DependencyKey string `yaml:"dependency_key,omitempty"`
	// PathPattern is a glob matched against every relative path.
	PathPattern string `yaml:"path_pattern,omitempty"`
}

// Matches evaluates the signal against a fingerprint. Pure; no I/O.
func (s Signal) Matches(fp *fingerprint.Fingerprint) bool {
	switch {
	case s.MarkerFile != "":
		return fp.HasPath(s.MarkerFile)
	case s.Manifest != "" && s.DependencyKey != "":
		return fp.HasManifestKey(s.Manifest, s.DependencyKey)
	case s.PathPattern != "":
		return matchAny(fp, s.PathPattern)
	}
	return false
}

// Rule is one classification predicate. Rules are immutable data records;
// declaration order within a band is the documented tie-break.
type Rule struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Weight float64 `yaml:"weight"`
	Signal Signal  `yaml:"signal"`
	Band   Band    `yaml:"-"`
}

// TemplateEntry is one expected path in a canonical layout. Paths ending in
// "/" are directories.
type TemplateEntry struct {
	Path      string `yaml:"path"`
	Optional  bool   `yaml:"optional,omitempty"`
	Rationale string `yaml:"rationale,omitempty"`
}

// AntiLocation flags paths that should not exist for a classification,
// e.g. source files at the root when a src/ convention is expected.
type AntiLocation struct {
	Pattern   string `yaml:"pattern"`
	Dest      string `yaml:"dest,omitempty"`
	Rationale string `yaml:"rationale"`
}

// Template is the canonical layout for one classification label.
type Template struct {
	Label         string          `yaml:"label"`
	Expected      []TemplateEntry `yaml:"expected"`
	AntiLocations []AntiLocation  `yaml:"anti_locations,omitempty"`
}

// Catalog is the loaded, validated rule table.
type Catalog struct {
	Version   string      `yaml:"version"`
	Framework []Rule      `yaml:"framework"`
	Language  []Rule      `yaml:"language"`
	Purpose   []Rule      `yaml:"purpose"`
	Templates []*Template `yaml:"templates"`

	// AntiPatterns lists the enabled detector predicate identifiers.
	// An empty list enables all predicates.
	AntiPatterns []string `yaml:"anti_patterns,omitempty"`

	byLabel map[string]*Template
}

// knownPredicates are the anti-pattern predicate identifiers the detector
// implements. The catalog may enable a subset but cannot invent new ones.
var knownPredicates = map[string]bool{
	"deep_nesting":       true,
	"mixed_naming":       true,
	"missing_vcs_ignore": true,
	"missing_license":    true,
	"no_test_structure":  true,
	"oversized_files":    true,
}

// Bands returns the rule bands in descending priority order.
func (c *Catalog) Bands() [][]Rule {
	return [][]Rule{c.Framework, c.Language, c.Purpose}
}

// TemplateFor returns the canonical template for a label, or nil when the
// catalog has none (generic findings still apply downstream).
func (c *Catalog) TemplateFor(label string) *Template {
	return c.byLabel[label]
}

// RuleCount returns the total number of rules across all bands.
func (c *Catalog) RuleCount() int {
	return len(c.Framework) + len(c.Language) + len(c.Purpose)
}

// IntegrityError is the fatal load-time validation failure. It never
// reaches analysis: a process with an inconsistent catalog refuses to start.
type IntegrityError struct {
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog integrity: %s", e.Detail)
}

// validate checks internal consistency and indexes templates by label.
func (c *Catalog) validate() error {
	if c.Version == "" {
		return &IntegrityError{Detail: "missing catalog version"}
	}

	labels := make(map[string]bool)
	names := make(map[string]bool)
	for band, rules := range map[Band][]Rule{
		BandFramework: c.Framework,
		BandLanguage:  c.Language,
		BandPurpose:   c.Purpose,
	} {
		for i := range rules {
			r := &rules[i]
			if r.Name == "" || r.Label == "" {
				return &IntegrityError{Detail: fmt.Sprintf("%s rule %d: name and label are required", band, i)}
			}
			if names[r.Name] {
				return &IntegrityError{Detail: fmt.Sprintf("duplicate rule name %q", r.Name)}
			}
			names[r.Name] = true
			if r.Weight <= 0 || r.Weight > 1 {
				return &IntegrityError{Detail: fmt.Sprintf("rule %q: weight %v outside (0,1]", r.Name, r.Weight)}
			}
			if (r.Signal == Signal{}) {
				return &IntegrityError{Detail: fmt.Sprintf("rule %q: empty signal", r.Name)}
			}
			labels[r.Label] = true
		}
	}

	c.byLabel = make(map[string]*Template, len(c.Templates))
	for _, t := range c.Templates {
		if t.Label == "" {
			return &IntegrityError{Detail: "template with empty label"}
		}
		if !labels[t.Label] {
			return &IntegrityError{Detail: fmt.Sprintf("template %q does not resolve to any declared rule label", t.Label)}
		}
		if _, dup := c.byLabel[t.Label]; dup {
			return &IntegrityError{Detail: fmt.Sprintf("duplicate template for label %q", t.Label)}
		}
		if len(t.Expected) == 0 {
			return &IntegrityError{Detail: fmt.Sprintf("template %q: no expected entries", t.Label)}
		}
		c.byLabel[t.Label] = t
	}

	for _, id := range c.AntiPatterns {
		if !knownPredicates[id] {
			return &IntegrityError{Detail: fmt.Sprintf("unknown anti-pattern predicate %q", id)}
		}
	}
	return nil
}

func matchAny(fp *fingerprint.Fingerprint, pattern string) bool {
	for _, f := range fp.Files {
		if ok, _ := matchPath(pattern, f); ok {
			return true
		}
	}
	for _, d := range fp.Tree {
		if ok, _ := matchPath(pattern, d.Path); ok {
			return true
		}
	}
	return false
}
