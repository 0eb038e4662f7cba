package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repolens/internal/catalog"
	"repolens/internal/fingerprint"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(`
version: "test"
framework:
  - {name: react-dep, label: react, weight: 0.8, signal: {manifest: package.json, dependency_key: react}}
  - {name: vue-dep, label: vue, weight: 0.8, signal: {manifest: package.json, dependency_key: vue}}
language:
  - {name: node-package, label: node, weight: 0.7, signal: {marker_file: package.json}}
  - {name: node-lock, label: node, weight: 0.2, signal: {marker_file: package-lock.json}}
  - {name: node-nvmrc, label: node, weight: 0.3, signal: {marker_file: .nvmrc}}
  - {name: go-mod, label: go, weight: 0.7, signal: {marker_file: go.mod}}
purpose:
  - {name: cli-cmd, label: cli, weight: 0.4, signal: {marker_file: cmd/}}
`))
	require.NoError(t, err)
	return cat
}

func TestFrameworkBeatsLanguage(t *testing.T) {
	cat := testCatalog(t)

	// One framework match against three language matches: the framework
	// band still wins outright.
	fp := fingerprint.FromPaths("/r", []string{
		"package.json", "package-lock.json", ".nvmrc",
	}, map[string][]string{"package.json": {"react"}})

	cls := Classify(fp, cat)
	assert.Equal(t, "react", cls.Label)
	assert.Equal(t, catalog.BandFramework, cls.Band)
	assert.InDelta(t, 0.8, cls.Confidence, 1e-9)
	require.Len(t, cls.Contributing, 1)
	assert.Equal(t, "react-dep", cls.Contributing[0].Name)
}

func TestAdditiveConfidenceCappedWithinBand(t *testing.T) {
	cat := testCatalog(t)
	fp := fingerprint.FromPaths("/r", []string{
		"package.json", "package-lock.json", ".nvmrc",
	}, nil)

	cls := Classify(fp, cat)
	assert.Equal(t, "node", cls.Label)
	assert.Equal(t, catalog.BandLanguage, cls.Band)
	// 0.7 + 0.2 + 0.3 caps at 1.0.
	assert.InDelta(t, 1.0, cls.Confidence, 1e-9)
	assert.Len(t, cls.Contributing, 3)
}

func TestMonotonicConfidence(t *testing.T) {
	cat := testCatalog(t)

	one := Classify(fingerprint.FromPaths("/r", []string{"package.json"}, nil), cat)
	two := Classify(fingerprint.FromPaths("/r", []string{"package.json", "package-lock.json"}, nil), cat)

	assert.Equal(t, one.Label, two.Label)
	assert.GreaterOrEqual(t, two.Confidence, one.Confidence,
		"adding a matching rule within a band must not lower confidence")
	assert.LessOrEqual(t, two.Confidence, 1.0)
	assert.GreaterOrEqual(t, one.Confidence, 0.0)
}

func TestTieBrokenByDeclarationOrder(t *testing.T) {
	cat := testCatalog(t)

	// Both react and vue match in the framework band; react is declared
	// first and wins. The loser is surfaced as a competing rule, not an
	// error.
	fp := fingerprint.FromPaths("/r", []string{"package.json"},
		map[string][]string{"package.json": {"react", "vue"}})

	cls := Classify(fp, cat)
	assert.Equal(t, "react", cls.Label)
	require.Len(t, cls.Competing, 1)
	assert.Equal(t, "vue-dep", cls.Competing[0].Name)
	// Ambiguity shows up only as a confidence below the unambiguous sum.
	assert.Less(t, cls.Confidence, 1.0)
}

func TestUnclassified(t *testing.T) {
	cat := testCatalog(t)
	fp := fingerprint.FromPaths("/r", []string{"notes.txt", "misc/data.csv"}, nil)

	cls := Classify(fp, cat)
	assert.Equal(t, Unclassified, cls.Label)
	assert.Zero(t, cls.Confidence)
	assert.True(t, cls.IsUnclassified())
	assert.Empty(t, cls.Contributing)
}

func TestPurposeBandFallback(t *testing.T) {
	cat := testCatalog(t)
	fp := fingerprint.FromPaths("/r", []string{"cmd/tool/main.c"}, nil)

	cls := Classify(fp, cat)
	assert.Equal(t, "cli", cls.Label)
	assert.Equal(t, catalog.BandPurpose, cls.Band)
	assert.InDelta(t, 0.4, cls.Confidence, 1e-9)
}
