// Package recommend merges comparator and detector findings into
// deduplicated, scored, tiered recommendations. Prioritize is a pure
// function of its input: no I/O, no side effects, deterministic output.
package recommend

import (
	"sort"

	"repolens/internal/finding"
)

// Tier is the recommendation priority. Lower sorts first.
type Tier int

const (
	TierCritical Tier = iota
	TierImportant
	TierEnhancement
)

func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "critical"
	case TierImportant:
		return "important"
	default:
		return "enhancement"
	}
}

// Recommendation is a deduplicated finding aggregate with a suggested
// structured remediation. Every recommendation traces to at least one
// finding.
type Recommendation struct {
	// ID is stable across runs: the action op plus path.
	ID     string         `json:"id"`
	Tier   Tier           `json:"tier"`
	Action finding.Action `json:"action"`
	// Rationale is the key of the highest-severity source finding.
	Rationale string `json:"rationale"`
	// Findings is the set-union of the source findings, ordered by ID.
	Findings []finding.Finding `json:"findings"`
}

// criticalRationales implements the fixed severity rule: absence of version
// control hygiene, of any test structure, and of a license are Critical.
var criticalRationales = map[string]bool{
	"missing_vcs_ignore": true,
	"no_test_structure":  true,
	"test_layout":        true,
	"missing_license":    true,
}

// importantRationales covers naming/organization inconsistencies and
// missing CI. Rationales outside both tables (custom catalogs) keep the
// severity their source finding carries.
var importantRationales = map[string]bool{
	"mixed_naming":        true,
	"deep_nesting":        true,
	"source_in_root":      true,
	"src_dir_unidiomatic": true,
	"grab_bag_package":    true,
	"source_layout":       true,
	"module_definition":   true,
	"entrypoint_layout":   true,
	"oversized_files":     true,
	"missing_ci":          true,
}

func tierFor(f finding.Finding) Tier {
	switch {
	case criticalRationales[f.Rationale]:
		return TierCritical
	case importantRationales[f.Rationale]:
		return TierImportant
	}
	switch f.Severity {
	case finding.SeverityCritical:
		return TierCritical
	case finding.SeverityImportant:
		return TierImportant
	default:
		return TierEnhancement
	}
}

// Prioritize deduplicates findings by (action op, path) and returns
// recommendations sorted by (tier, path). Feeding the same finding twice
// yields one recommendation whose source set still has one entry per
// distinct finding ID.
func Prioritize(findings []finding.Finding) []Recommendation {
	byKey := make(map[string]*Recommendation)
	seen := make(map[string]map[string]bool)

	for _, f := range findings {
		key := f.Action.Key()
		rec, ok := byKey[key]
		if !ok {
			rec = &Recommendation{
				ID:        f.Action.Op + ":" + f.Action.Path,
				Tier:      tierFor(f),
				Action:    f.Action,
				Rationale: f.Rationale,
			}
			byKey[key] = rec
			seen[key] = make(map[string]bool)
		}
		if seen[key][f.ID] {
			continue
		}
		seen[key][f.ID] = true
		rec.Findings = append(rec.Findings, f)

		// A later finding can raise (never lower) the tier of the
		// recommendation it merges into.
		if t := tierFor(f); t < rec.Tier {
			rec.Tier = t
			rec.Rationale = f.Rationale
		}
	}

	out := make([]Recommendation, 0, len(byKey))
	for _, rec := range byKey {
		sort.Slice(rec.Findings, func(i, j int) bool { return rec.Findings[i].ID < rec.Findings[j].ID })
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Action.Path < out[j].Action.Path
	})
	return out
}
