// Package scaffold turns recommendations into reviewable remediation
// artifacts: a POSIX shell script plus optional template file bodies. The
// tool never executes the script and never writes into the analyzed
// repository; emission is the caller's choice.
package scaffold

import (
	"fmt"
	"strings"

	"repolens/internal/analysis"
	"repolens/internal/recommend"
)

// Options controls script generation.
type Options struct {
	// WithTemplates inlines file bodies (.gitignore, LICENSE placeholder,
	// CI stub) instead of bare touch commands.
	WithTemplates bool
}

// Script renders the remediation script for a result. Output is
// deterministic: recommendations are already sorted by (tier, path).
func Script(res *analysis.Result, opts Options) string {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated by repolens. Review before running.\n")
	fmt.Fprintf(&b, "# Target: %s\n", res.Root)
	fmt.Fprintf(&b, "# Run: %s (catalog %s)\n", res.RunID, res.CatalogVersion)
	b.WriteString("set -eu\n\n")
	fmt.Fprintf(&b, "cd %s\n\n", shellQuote(res.Root))

	if len(res.Recommendations) == 0 {
		b.WriteString("# Nothing to do.\n")
		return b.String()
	}

	for _, tier := range []recommend.Tier{recommend.TierCritical, recommend.TierImportant, recommend.TierEnhancement} {
		for _, rec := range res.Recommendations {
			if rec.Tier != tier {
				continue
			}
			writeStep(&b, res, rec, opts)
		}
	}
	return b.String()
}

func writeStep(b *strings.Builder, res *analysis.Result, rec recommend.Recommendation, opts Options) {
	fmt.Fprintf(b, "# [%s] %s\n", rec.Tier, rec.Rationale)
	switch rec.Action.Op {
	case "create_dir":
		fmt.Fprintf(b, "mkdir -p %s\n", shellQuote(strings.TrimSuffix(rec.Action.Path, "/")))
	case "create_file":
		if opts.WithTemplates {
			writeTemplate(b, res, rec.Action.Path)
		} else {
			fmt.Fprintf(b, "touch %s\n", shellQuote(rec.Action.Path))
		}
	case "move":
		writeMove(b, rec)
	default: // review
		for _, f := range rec.Findings {
			fmt.Fprintf(b, "# review: %s (%s)\n", strings.Join(f.Paths, ", "), f.Rationale)
		}
	}
	b.WriteString("\n")
}

// writeMove emits one git mv per offending path, commented out: moves are
// the most invasive suggestion and stay opt-in even inside a generated
// script.
func writeMove(b *strings.Builder, rec recommend.Recommendation) {
	dest := rec.Action.Dest
	if dest == "" {
		for _, f := range rec.Findings {
			fmt.Fprintf(b, "# review placement: %s\n", strings.Join(f.Paths, ", "))
		}
		return
	}
	fmt.Fprintf(b, "mkdir -p %s\n", shellQuote(strings.TrimSuffix(dest, "/")))
	for _, f := range rec.Findings {
		for _, p := range f.Paths {
			fmt.Fprintf(b, "# git mv %s %s\n", shellQuote(p), shellQuote(dest))
		}
	}
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[](){}<>;&|~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
