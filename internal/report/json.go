package report

import (
	"encoding/json"

	"repolens/internal/analysis"
)

// JSON renders the machine-readable report. Field names are stable and
// independent of any human rendering; downstream tooling keys off the IDs.
func JSON(res *analysis.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}
