// Package report renders an analysis result into human-facing artifacts.
// It consumes the structured result only; it never re-reads the analyzed
// repository.
package report

import (
	"fmt"
	"strings"

	"repolens/internal/analysis"
	"repolens/internal/recommend"
)

// Markdown renders the full structure report.
func Markdown(res *analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Repository structure report\n\n")
	fmt.Fprintf(&b, "- **Root**: `%s`\n", res.Root)
	fmt.Fprintf(&b, "- **Run**: `%s` (catalog %s)\n", res.RunID, res.CatalogVersion)
	fmt.Fprintf(&b, "- **Files seen**: %d (max depth %d)\n", res.Fingerprint.TotalFiles, res.Fingerprint.MaxDepth)
	if res.Fingerprint.Sampled {
		fmt.Fprintf(&b, "- **Note**: tree exceeded the sampling cap; results are based on a partial listing\n")
	}
	if res.Fingerprint.PartialRead {
		fmt.Fprintf(&b, "- **Note**: one or more subdirectories were unreadable\n")
	}
	b.WriteString("\n")

	b.WriteString("## Classification\n\n")
	if res.Classification.IsUnclassified() {
		b.WriteString("No recognizable project type. Only generic checks apply.\n\n")
	} else {
		fmt.Fprintf(&b, "**%s** (%s band, confidence %.2f)\n\n",
			res.Classification.Label, res.Classification.Band, res.Classification.Confidence)
		for _, r := range res.Classification.Contributing {
			fmt.Fprintf(&b, "- matched rule `%s`\n", r.Name)
		}
		for _, r := range res.Classification.Competing {
			fmt.Fprintf(&b, "- competing rule `%s` (label %s, outranked by declaration order)\n", r.Name, r.Label)
		}
		b.WriteString("\n")
	}

	crit, imp, enh := res.Counts()
	fmt.Fprintf(&b, "## Recommendations (%d critical, %d important, %d enhancement)\n\n", crit, imp, enh)
	if len(res.Recommendations) == 0 {
		b.WriteString("Nothing to report. The layout matches its conventions.\n")
	}
	for _, tier := range []recommend.Tier{recommend.TierCritical, recommend.TierImportant, recommend.TierEnhancement} {
		wroteHeader := false
		for _, rec := range res.Recommendations {
			if rec.Tier != tier {
				continue
			}
			if !wroteHeader {
				fmt.Fprintf(&b, "### %s\n\n", titleCase(tier.String()))
				wroteHeader = true
			}
			fmt.Fprintf(&b, "- `%s`: %s `%s`%s\n", rec.ID, rec.Action.Op, rec.Action.Path, moveDest(rec))
			for _, f := range rec.Findings {
				fmt.Fprintf(&b, "  - %s: %s (%s)\n", f.Kind, strings.Join(f.Paths, ", "), f.Rationale)
			}
		}
		if wroteHeader {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Directory tree\n\n```\n")
	b.WriteString(treeBlock(res))
	b.WriteString("```\n")

	return b.String()
}

func moveDest(rec recommend.Recommendation) string {
	if rec.Action.Op == "move" && rec.Action.Dest != "" {
		return fmt.Sprintf(" -> `%s`", rec.Action.Dest)
	}
	return ""
}

// treeBlock renders the directory sequence with indentation by depth,
// capped so pathological trees stay readable.
func treeBlock(res *analysis.Result) string {
	const maxLines = 200
	var b strings.Builder
	fmt.Fprintf(&b, "%s/\n", res.Root)
	for i, d := range res.Fingerprint.Tree {
		if i >= maxLines {
			fmt.Fprintf(&b, "... (%d more)\n", len(res.Fingerprint.Tree)-maxLines)
			break
		}
		fmt.Fprintf(&b, "%s%s/\n", strings.Repeat("  ", d.Depth), lastSegment(d.Path))
	}
	return b.String()
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
