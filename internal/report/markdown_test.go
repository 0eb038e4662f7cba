package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repolens/internal/analysis"
	"repolens/internal/catalog"
	"repolens/internal/classify"
	"repolens/internal/finding"
	"repolens/internal/fingerprint"
	"repolens/internal/recommend"
)

func sampleResult() *analysis.Result {
	fp := fingerprint.FromPaths("/repo", []string{
		"package.json", "src/index.js", "app.js",
	}, map[string][]string{"package.json": {"react"}})

	findings := []finding.Finding{
		finding.New(finding.KindAntiPattern, "missing_license", finding.SeverityCritical,
			finding.Action{Op: "create_file", Path: "LICENSE"}, "LICENSE"),
		finding.New(finding.KindExtraOrMisplaced, "source_in_root", finding.SeverityImportant,
			finding.Action{Op: "move", Path: "*.js", Dest: "src/"}, "app.js"),
	}

	return &analysis.Result{
		RunID:          "11111111-2222-3333-4444-555555555555",
		Root:           "/repo",
		StartedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CatalogVersion: "test",
		Fingerprint:    fp,
		Classification: classify.Classification{
			Label:      "react",
			Band:       catalog.BandFramework,
			Confidence: 0.8,
		},
		Findings:        findings,
		Recommendations: recommend.Prioritize(findings),
	}
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sampleResult())

	assert.Contains(t, md, "# Repository structure report")
	assert.Contains(t, md, "## Classification")
	assert.Contains(t, md, "**react**")
	assert.Contains(t, md, "confidence 0.80")
	assert.Contains(t, md, "### Critical")
	assert.Contains(t, md, "`create_file:LICENSE`")
	assert.Contains(t, md, "### Important")
	assert.Contains(t, md, "`src/`")
	assert.Contains(t, md, "## Directory tree")
}

func TestMarkdownUnclassified(t *testing.T) {
	res := sampleResult()
	res.Classification = classify.Classification{Label: classify.Unclassified}

	md := Markdown(res)
	assert.Contains(t, md, "No recognizable project type")
}

func TestMarkdownFlags(t *testing.T) {
	res := sampleResult()
	res.Fingerprint = fingerprint.FromPaths("/repo", []string{"a.txt"}, nil)
	res.Fingerprint.Sampled = true
	res.Fingerprint.PartialRead = true

	md := Markdown(res)
	assert.Contains(t, md, "sampling cap")
	assert.Contains(t, md, "unreadable")
}

func TestJSONStableIdentifiers(t *testing.T) {
	out, err := JSON(sampleResult())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", doc["run_id"])
	assert.Contains(t, doc, "classification")
	assert.Contains(t, doc, "findings")
	assert.Contains(t, doc, "recommendations")

	recs := doc["recommendations"].([]interface{})
	require.NotEmpty(t, recs)
	first := recs[0].(map[string]interface{})
	assert.Equal(t, "create_file:LICENSE", first["id"])
}

func TestTermFallsBackGracefully(t *testing.T) {
	out := Term(sampleResult())
	// Styled or not, the summary and body must be present.
	assert.Contains(t, out, "repolens")
	assert.True(t, strings.Contains(out, "critical") || strings.Contains(out, "Critical"))
}
