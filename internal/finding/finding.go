// Package finding defines the deviation records produced by the structure
// comparator and the anti-pattern detector, and consumed by the prioritizer.
package finding

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the three deviation categories.
type Kind string

const (
	KindMissingPath      Kind = "missing_path"
	KindExtraOrMisplaced Kind = "extra_or_misplaced_path"
	KindAntiPattern      Kind = "anti_pattern"
)

// Severity is the tier a finding (and later its recommendation) lands in.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityImportant
	SeverityEnhancement
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityImportant:
		return "important"
	default:
		return "enhancement"
	}
}

// Action is the structured remediation suggested for a finding. Op is one of
// "create_dir", "create_file", "move", "review".
type Action struct {
	Op   string `json:"op"`
	Path string `json:"path"`
	// Dest is set for "move" actions only.
	Dest string `json:"dest,omitempty"`
}

// Key returns the deduplication key: findings suggesting the same operation
// on the same path collapse into one recommendation.
func (a Action) Key() string {
	return a.Op + "\x00" + a.Path
}

// Finding is a single detected deviation. Findings are produced fresh per
// analysis run and are never persisted.
type Finding struct {
	// ID is stable across runs for the same deviation, e.g.
	// "missing_path:tests/". Rendering layers key off it.
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Paths    []string `json:"paths"`
	Severity Severity `json:"severity"`
	// Rationale is a machine-readable key ("no_test_structure",
	// "deep_nesting", ...), not free text.
	Rationale string `json:"rationale"`
	// Source names the template entry, anti-location, or predicate that
	// produced this finding.
	Source string `json:"source"`
	Action Action `json:"action"`
}

// New builds a finding with a derived stable ID.
func New(kind Kind, rationale string, severity Severity, action Action, paths ...string) Finding {
	sort.Strings(paths)
	return Finding{
		ID:        fmt.Sprintf("%s:%s:%s", kind, rationale, strings.Join(paths, ",")),
		Kind:      kind,
		Paths:     paths,
		Severity:  severity,
		Rationale: rationale,
		Action:    action,
	}
}

// Sort orders findings deterministically by (severity, id).
func Sort(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Severity != fs[j].Severity {
			return fs[i].Severity < fs[j].Severity
		}
		return fs[i].ID < fs[j].ID
	})
}
