// Package antipattern runs classification-independent structural checks.
// Every predicate is pure, order-insensitive, and fires independently of
// the others; the detector never consults the classification.
package antipattern

import (
	"fmt"
	"strings"

	"repolens/internal/finding"
	"repolens/internal/fingerprint"
)

// Config holds the predicate thresholds.
type Config struct {
	// MaxDepth is the nesting depth above which deep_nesting fires.
	MaxDepth int
	// Enabled selects predicates by identifier; empty means all.
	Enabled []string
}

// DefaultConfig returns the documented defaults (depth threshold 4, all
// predicates enabled).
func DefaultConfig() Config {
	return Config{MaxDepth: 4}
}

// predicate is one independent structural check.
type predicate struct {
	id  string
	run func(cfg Config, fp *fingerprint.Fingerprint) []finding.Finding
}

// predicates is the fixed check set. Order is irrelevant to the result;
// findings are sorted before return.
var predicates = []predicate{
	{"deep_nesting", deepNesting},
	{"mixed_naming", mixedNaming},
	{"missing_vcs_ignore", missingVCSIgnore},
	{"missing_license", missingLicense},
	{"no_test_structure", noTestStructure},
	{"oversized_files", oversizedFiles},
}

// PredicateIDs returns the identifiers of all implemented predicates.
func PredicateIDs() []string {
	ids := make([]string, len(predicates))
	for i, p := range predicates {
		ids[i] = p.id
	}
	return ids
}

// Detect evaluates every enabled predicate against the fingerprint.
func Detect(cfg Config, fp *fingerprint.Fingerprint) []finding.Finding {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 4
	}
	enabled := make(map[string]bool, len(cfg.Enabled))
	for _, id := range cfg.Enabled {
		enabled[id] = true
	}

	var findings []finding.Finding
	for _, p := range predicates {
		if len(enabled) > 0 && !enabled[p.id] {
			continue
		}
		findings = append(findings, p.run(cfg, fp)...)
	}
	finding.Sort(findings)
	return findings
}

func deepNesting(cfg Config, fp *fingerprint.Fingerprint) []finding.Finding {
	var deepest []string
	for _, d := range fp.Tree {
		if d.Depth > cfg.MaxDepth {
			deepest = append(deepest, d.Path)
		}
	}
	if len(deepest) == 0 {
		return nil
	}
	f := finding.New(
		finding.KindAntiPattern,
		"deep_nesting",
		finding.SeverityImportant,
		finding.Action{Op: "review", Path: deepest[0]},
		deepest...,
	)
	f.Source = fmt.Sprintf("predicate:deep_nesting(max=%d)", cfg.MaxDepth)
	return []finding.Finding{f}
}

func mixedNaming(_ Config, fp *fingerprint.Fingerprint) []finding.Finding {
	var findings []finding.Finding
	for parent, names := range fp.SiblingDirs() {
		styles := make(map[string][]string)
		for _, n := range names {
			if s := namingStyle(n); s != "" {
				styles[s] = append(styles[s], n)
			}
		}
		if len(styles) < 2 {
			continue
		}
		var offenders []string
		for _, group := range styles {
			offenders = append(offenders, qualify(parent, group)...)
		}
		f := finding.New(
			finding.KindAntiPattern,
			"mixed_naming",
			finding.SeverityImportant,
			finding.Action{Op: "review", Path: parentOrRoot(parent)},
			offenders...,
		)
		f.Source = "predicate:mixed_naming"
		findings = append(findings, f)
	}
	return findings
}

func missingVCSIgnore(_ Config, fp *fingerprint.Fingerprint) []finding.Finding {
	if fp.HasFile(".gitignore") || fp.HasFile(".hgignore") {
		return nil
	}
	f := finding.New(
		finding.KindAntiPattern,
		"missing_vcs_ignore",
		finding.SeverityCritical,
		finding.Action{Op: "create_file", Path: ".gitignore"},
		".gitignore",
	)
	f.Source = "predicate:missing_vcs_ignore"
	return []finding.Finding{f}
}

var licenseNames = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING", "UNLICENSE"}

func missingLicense(_ Config, fp *fingerprint.Fingerprint) []finding.Finding {
	for _, name := range licenseNames {
		if fp.HasFile(name) {
			return nil
		}
	}
	f := finding.New(
		finding.KindAntiPattern,
		"missing_license",
		finding.SeverityCritical,
		finding.Action{Op: "create_file", Path: "LICENSE"},
		"LICENSE",
	)
	f.Source = "predicate:missing_license"
	return []finding.Finding{f}
}

var testDirNames = map[string]bool{
	"test": true, "tests": true, "spec": true, "__tests__": true, "testdata": true,
}

func noTestStructure(_ Config, fp *fingerprint.Fingerprint) []finding.Finding {
	for _, d := range fp.Tree {
		parts := strings.Split(d.Path, "/")
		if testDirNames[parts[len(parts)-1]] {
			return nil
		}
	}
	for _, f := range fp.Files {
		if isTestFile(f) {
			return nil
		}
	}
	f := finding.New(
		finding.KindAntiPattern,
		"no_test_structure",
		finding.SeverityCritical,
		finding.Action{Op: "create_dir", Path: "tests/"},
		"tests/",
	)
	f.Source = "predicate:no_test_structure"
	return []finding.Finding{f}
}

func oversizedFiles(_ Config, fp *fingerprint.Fingerprint) []finding.Finding {
	if len(fp.LargeFiles) == 0 {
		return nil
	}
	// Files the ignore file already covers are not findings; without an
	// ignore file every oversized file counts.
	ignored := ignorePatterns(fp)
	var offenders []string
	for _, lf := range fp.LargeFiles {
		if !coveredByIgnore(lf.Path, ignored) {
			offenders = append(offenders, lf.Path)
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	f := finding.New(
		finding.KindAntiPattern,
		"oversized_files",
		finding.SeverityImportant,
		finding.Action{Op: "review", Path: offenders[0]},
		offenders...,
	)
	f.Source = "predicate:oversized_files"
	return []finding.Finding{f}
}

func qualify(parent string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if parent == "" {
			out[i] = n
		} else {
			out[i] = parent + "/" + n
		}
	}
	return out
}

func parentOrRoot(parent string) string {
	if parent == "" {
		return "."
	}
	return parent
}
