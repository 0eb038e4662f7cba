// Package classify matches a fingerprint against the rule catalog and
// produces a single ranked classification.
package classify

import (
	"repolens/internal/catalog"
	"repolens/internal/fingerprint"
)

// Unclassified is the fallback label when no rule in any band matches.
const Unclassified = "unclassified"

// Classification is the result of the priority cascade. Exactly one is
// produced per analysis.
type Classification struct {
	Label      string       `json:"label"`
	Band       catalog.Band `json:"band"`
	Confidence float64      `json:"confidence"`

	// Contributing holds the rules that agreed on the winning label, in
	// declaration order, for explainability.
	Contributing []catalog.Rule `json:"contributing,omitempty"`

	// Competing holds same-band matches for other labels. A non-empty
	// list means the tie was broken by declaration order; that is
	// surfaced only through the lower confidence, never as an error.
	Competing []catalog.Rule `json:"competing,omitempty"`
}

// IsUnclassified reports whether no rule matched at all.
func (c Classification) IsUnclassified() bool {
	return c.Confidence == 0
}

// Classify runs the three-band cascade. The highest-priority band with any
// match wins outright: a single framework match beats any number of
// language matches. Within the winning band, the label of the
// first-declared matching rule wins; rules agreeing on that label
// accumulate confidence additively, capped at 1.0. Matches for other
// labels in the same band are recorded as competing and lower the result's
// confidence relative to an unambiguous match, which is the documented
// surfacing of an ambiguous project type.
func Classify(fp *fingerprint.Fingerprint, cat *catalog.Catalog) Classification {
	for _, band := range cat.Bands() {
		var matched []catalog.Rule
		for _, r := range band {
			if r.Signal.Matches(fp) {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			continue
		}

		winner := matched[0].Label
		cls := Classification{
			Label: winner,
			Band:  matched[0].Band,
		}
		for _, r := range matched {
			if r.Label == winner {
				cls.Confidence += r.Weight
				cls.Contributing = append(cls.Contributing, r)
			} else {
				cls.Competing = append(cls.Competing, r)
			}
		}
		if cls.Confidence > 1.0 {
			cls.Confidence = 1.0
		}
		return cls
	}

	return Classification{Label: Unclassified, Band: catalog.BandPurpose}
}
