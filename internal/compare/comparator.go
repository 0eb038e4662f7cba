// Package compare diffs a fingerprint against the canonical template for
// its classification. It emits MissingPath and ExtraOrMisplacedPath
// findings; anti-pattern detection lives elsewhere and runs regardless of
// classification.
package compare

import (
	"path"
	"strings"

	"repolens/internal/catalog"
	"repolens/internal/classify"
	"repolens/internal/finding"
	"repolens/internal/fingerprint"
)

// Compare is a pure function of (fingerprint, classification, catalog):
// running it twice on the same inputs yields identical findings. It is
// skipped entirely for an unclassified fingerprint, and returns nothing
// when the catalog carries no template for the winning label.
func Compare(fp *fingerprint.Fingerprint, cls classify.Classification, cat *catalog.Catalog) []finding.Finding {
	if cls.IsUnclassified() {
		return nil
	}
	tpl := cat.TemplateFor(cls.Label)
	if tpl == nil {
		return nil
	}

	var findings []finding.Finding
	for _, entry := range tpl.Expected {
		if entry.Optional || fp.HasPath(entry.Path) {
			continue
		}
		findings = append(findings, missingPath(entry))
	}
	for _, anti := range tpl.AntiLocations {
		if hits := misplaced(fp, anti); len(hits) > 0 {
			findings = append(findings, misplacedPath(anti, hits))
		}
	}

	finding.Sort(findings)
	return findings
}

func missingPath(entry catalog.TemplateEntry) finding.Finding {
	op := "create_file"
	if strings.HasSuffix(entry.Path, "/") {
		op = "create_dir"
	}
	sev := finding.SeverityEnhancement
	switch entry.Rationale {
	case "test_layout", "missing_vcs_ignore", "missing_license":
		sev = finding.SeverityCritical
	case "source_layout", "module_definition", "entrypoint_layout":
		sev = finding.SeverityImportant
	}
	f := finding.New(
		finding.KindMissingPath,
		entry.Rationale,
		sev,
		finding.Action{Op: op, Path: entry.Path},
		entry.Path,
	)
	f.Source = "template:" + entry.Path
	return f
}

// misplaced returns fingerprint paths colliding with a declared
// anti-location. Matching is case-sensitive: a pattern ending in "/" is a
// prefix match against directories, anything else is a glob against the
// relative path (so "*.py" only hits root-level files).
func misplaced(fp *fingerprint.Fingerprint, anti catalog.AntiLocation) []string {
	if strings.HasSuffix(anti.Pattern, "/") {
		prefix := strings.TrimSuffix(anti.Pattern, "/")
		if !fp.HasDir(prefix) {
			return nil
		}
		// Name the files inside the offending directory; a directory the
		// walk saw but did not enumerate is reported by itself.
		if files := fp.FilesUnder(prefix); len(files) > 0 {
			return files
		}
		return []string{prefix + "/"}
	}

	var hits []string
	for _, f := range fp.Files {
		if ok, _ := path.Match(anti.Pattern, f); ok {
			hits = append(hits, f)
		}
	}
	return hits
}

func misplacedPath(anti catalog.AntiLocation, hits []string) finding.Finding {
	f := finding.New(
		finding.KindExtraOrMisplaced,
		anti.Rationale,
		finding.SeverityImportant,
		finding.Action{Op: "move", Path: anti.Pattern, Dest: anti.Dest},
		hits...,
	)
	f.Source = "anti_location:" + anti.Pattern
	return f
}
