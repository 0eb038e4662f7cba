package analysis

import (
	"time"

	"repolens/internal/classify"
	"repolens/internal/finding"
	"repolens/internal/fingerprint"
	"repolens/internal/recommend"
)

// Result is the structured output of one analysis run, consumed by the
// report and scaffold layers. Identifiers inside it are machine-readable
// and independent of any rendering.
type Result struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	CatalogVersion string `json:"catalog_version"`

	Fingerprint     *fingerprint.Fingerprint   `json:"fingerprint"`
	Classification  classify.Classification    `json:"classification"`
	Findings        []finding.Finding          `json:"findings"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// Counts returns the number of recommendations per tier, for summaries.
func (r *Result) Counts() (critical, important, enhancement int) {
	for _, rec := range r.Recommendations {
		switch rec.Tier {
		case recommend.TierCritical:
			critical++
		case recommend.TierImportant:
			important++
		default:
			enhancement++
		}
	}
	return
}
