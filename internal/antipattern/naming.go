package antipattern

import (
	"path"
	"strings"
	"unicode"

	"repolens/internal/fingerprint"
)

// namingStyle classifies a directory name as "kebab", "snake", "camel", or
// "" when the name carries no convention signal (single lowercase word,
// dotfile, all-caps).
func namingStyle(name string) string {
	if name == "" || strings.HasPrefix(name, ".") {
		return ""
	}
	hasDash := strings.Contains(name, "-")
	hasUnderscore := strings.Contains(name, "_")
	hasUpper := strings.IndexFunc(name, unicode.IsUpper) >= 0
	hasLower := strings.IndexFunc(name, unicode.IsLower) >= 0

	switch {
	case hasDash && !hasUnderscore:
		return "kebab"
	case hasUnderscore && !hasDash:
		return "snake"
	case hasUpper && hasLower && !hasDash && !hasUnderscore:
		return "camel"
	}
	return ""
}

// isTestFile recognizes common per-ecosystem test file naming. Mirrors the
// patterns the catalog's templates assume.
func isTestFile(rel string) bool {
	base := path.Base(rel)
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasSuffix(base, "_test.py"),
		strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
		strings.HasSuffix(base, ".test.js"),
		strings.HasSuffix(base, ".test.ts"),
		strings.HasSuffix(base, ".test.jsx"),
		strings.HasSuffix(base, ".test.tsx"),
		strings.HasSuffix(base, ".spec.js"),
		strings.HasSuffix(base, ".spec.ts"),
		strings.HasSuffix(base, "_spec.rb"),
		strings.HasSuffix(base, "Test.java"),
		strings.HasSuffix(base, "Tests.java"):
		return true
	}
	return false
}

// ignorePatterns reads nothing from disk: it only knows whether an ignore
// file exists in the fingerprint. Pattern contents are not parsed (the
// fingerprint is the sole input), so coverage is approximated by presence
// of an ignore file plus the conventional build-output directories.
func ignorePatterns(fp *fingerprint.Fingerprint) []string {
	if !fp.HasFile(".gitignore") && !fp.HasFile(".hgignore") {
		return nil
	}
	return []string{"dist/", "build/", "target/", "node_modules/", "*.log", "*.bin"}
}

func coveredByIgnore(rel string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(rel, p) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
