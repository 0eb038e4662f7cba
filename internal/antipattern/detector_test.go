package antipattern

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repolens/internal/finding"
	"repolens/internal/fingerprint"
)

// tidy is a fixture with no anti-patterns at all.
func tidy() *fingerprint.Fingerprint {
	return fingerprint.FromPaths("/r", []string{
		".gitignore",
		"LICENSE",
		"README.md",
		"src/app.py",
		"tests/test_app.py",
	}, nil)
}

func byRationale(fs []finding.Finding, rationale string) *finding.Finding {
	for i := range fs {
		if fs[i].Rationale == rationale {
			return &fs[i]
		}
	}
	return nil
}

func TestTidyRepoHasNoFindings(t *testing.T) {
	assert.Empty(t, Detect(DefaultConfig(), tidy()))
}

func TestDeepNesting(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{
		".gitignore", "LICENSE", "tests/t.py",
		"a/b/c/d/e/f.txt",
	}, nil)

	fs := Detect(DefaultConfig(), fp)
	deep := byRationale(fs, "deep_nesting")
	require.NotNil(t, deep)
	assert.Equal(t, finding.SeverityImportant, deep.Severity)
	assert.Contains(t, deep.Paths, "a/b/c/d/e")

	// Raising the threshold silences it.
	fs = Detect(Config{MaxDepth: 6}, fp)
	assert.Nil(t, byRationale(fs, "deep_nesting"))
}

func TestMixedNaming(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{
		".gitignore", "LICENSE", "tests/t.py",
		"my-services/a.txt",
		"my_handlers/b.txt",
	}, nil)

	fs := Detect(DefaultConfig(), fp)
	mixed := byRationale(fs, "mixed_naming")
	require.NotNil(t, mixed, "kebab and snake case siblings must be flagged")
	assert.ElementsMatch(t, []string{"my-services", "my_handlers"}, mixed.Paths)
}

func TestMixedNamingIgnoresSingleConvention(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{
		".gitignore", "LICENSE", "tests/t.py",
		"my-services/a.txt",
		"my-handlers/b.txt",
		"docs/c.txt",
	}, nil)

	assert.Nil(t, byRationale(Detect(DefaultConfig(), fp), "mixed_naming"))
}

func TestMissingVCSIgnoreAndLicense(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{"src/a.go", "src/a_test.go"}, nil)

	fs := Detect(DefaultConfig(), fp)

	ignore := byRationale(fs, "missing_vcs_ignore")
	require.NotNil(t, ignore)
	assert.Equal(t, finding.SeverityCritical, ignore.Severity)
	assert.Equal(t, finding.Action{Op: "create_file", Path: ".gitignore"}, ignore.Action)

	license := byRationale(fs, "missing_license")
	require.NotNil(t, license)
	assert.Equal(t, finding.SeverityCritical, license.Severity)
}

func TestNoTestStructure(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{".gitignore", "LICENSE", "src/app.py"}, nil)

	fs := Detect(DefaultConfig(), fp)
	noTests := byRationale(fs, "no_test_structure")
	require.NotNil(t, noTests)
	assert.Equal(t, finding.SeverityCritical, noTests.Severity)

	t.Run("test file naming counts", func(t *testing.T) {
		fp := fingerprint.FromPaths("/r", []string{".gitignore", "LICENSE", "src/app.py", "src/test_app.py"}, nil)
		assert.Nil(t, byRationale(Detect(DefaultConfig(), fp), "no_test_structure"))
	})

	t.Run("test directory counts", func(t *testing.T) {
		fp := fingerprint.FromPaths("/r", []string{".gitignore", "LICENSE", "spec/", "src/app.rb"}, nil)
		assert.Nil(t, byRationale(Detect(DefaultConfig(), fp), "no_test_structure"))
	})
}

func TestOversizedFiles(t *testing.T) {
	fp := tidy()
	fp.LargeFiles = []fingerprint.LargeFile{{Path: "assets/video.mov", Size: 50 << 20}}

	fs := Detect(DefaultConfig(), fp)
	big := byRationale(fs, "oversized_files")
	require.NotNil(t, big)
	assert.Equal(t, []string{"assets/video.mov"}, big.Paths)

	t.Run("conventional build output is treated as covered", func(t *testing.T) {
		fp := tidy()
		fp.LargeFiles = []fingerprint.LargeFile{{Path: "dist/bundle.js", Size: 50 << 20}}
		assert.Nil(t, byRationale(Detect(DefaultConfig(), fp), "oversized_files"))
	})
}

func TestEnabledSubset(t *testing.T) {
	fp := fingerprint.FromPaths("/r", []string{"src/app.py"}, nil)

	fs := Detect(Config{MaxDepth: 4, Enabled: []string{"missing_license"}}, fp)
	require.Len(t, fs, 1)
	assert.Equal(t, "missing_license", fs[0].Rationale)
}

// Two fingerprints identical except for classification-triggering markers
// must produce identical anti-pattern findings: the detector never
// consults the classification.
func TestClassificationIndependence(t *testing.T) {
	base := []string{"src/app.py"}
	withMarkers := append([]string{"package.json", "go.mod"}, base...)

	plain := Detect(DefaultConfig(), fingerprint.FromPaths("/r", base, nil))
	marked := Detect(DefaultConfig(), fingerprint.FromPaths("/r", withMarkers,
		map[string][]string{"package.json": {"react"}}))

	strip := func(fs []finding.Finding) []string {
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = f.Rationale
		}
		return out
	}
	if diff := cmp.Diff(strip(plain), strip(marked)); diff != "" {
		t.Errorf("detector output depends on classification markers:\n%s", diff)
	}
}

func TestNamingStyle(t *testing.T) {
	cases := map[string]string{
		"my-lib":    "kebab",
		"my_lib":    "snake",
		"myLib":     "camel",
		"docs":      "",
		".github":   "",
		"UPPER":     "",
		"mixed_one": "snake",
	}
	for name, want := range cases {
		assert.Equal(t, want, namingStyle(name), "namingStyle(%q)", name)
	}
}
