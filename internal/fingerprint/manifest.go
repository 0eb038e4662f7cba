package fingerprint

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"
)

// maxManifestBytes bounds how much of a manifest is read. Classification
// needs dependency names, not full content.
const maxManifestBytes = 256 * 1024

var manifestNames = map[string]bool{
	"go.mod":           true,
	"package.json":     true,
	"requirements.txt": true,
	"pyproject.toml":   true,
	"Cargo.toml":       true,
	"Gemfile":          true,
	"pom.xml":          true,
	"build.gradle":     true,
	"composer.json":    true,
	"mix.exs":          true,
}

func isManifest(name string) bool {
	return manifestNames[name]
}

// extractManifestKeys pulls declared dependency names out of a manifest.
// This is deliberately shallow: line scanning and one JSON decode, no
// language grammars. Unreadable or malformed manifests yield an empty key
// set, never an error.
func extractManifestKeys(path string) []string {
	data, err := readCapped(path)
	if err != nil {
		return nil
	}

	var keys []string
	switch {
	case strings.HasSuffix(path, "package.json") || strings.HasSuffix(path, "composer.json"):
		keys = jsonDependencyKeys(data)
	case strings.HasSuffix(path, "go.mod"):
		keys = goModRequires(data)
	case strings.HasSuffix(path, "requirements.txt"):
		keys = requirementNames(data)
	case strings.HasSuffix(path, "Cargo.toml") || strings.HasSuffix(path, "pyproject.toml"):
		keys = tomlSectionKeys(data)
	case strings.HasSuffix(path, "Gemfile"):
		keys = gemfileGems(data)
	default:
		// pom.xml, build.gradle, mix.exs: substring signals suffice, so
		// record tokens from lines mentioning common dependency markup.
		keys = rawDependencyLines(data)
	}

	sort.Strings(keys)
	return dedupe(keys)
}

func readCapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxManifestBytes))
}

// jsonDependencyKeys collects the key names of the dependency maps in a
// package.json-shaped document.
func jsonDependencyKeys(data []byte) []string {
	var doc struct {
		Dependencies    map[string]json.RawMessage `json:"dependencies"`
		DevDependencies map[string]json.RawMessage `json:"devDependencies"`
		Require         map[string]json.RawMessage `json:"require"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	var keys []string
	for k := range doc.Dependencies {
		keys = append(keys, k)
	}
	for k := range doc.DevDependencies {
		keys = append(keys, k)
	}
	for k := range doc.Require {
		keys = append(keys, k)
	}
	return keys
}

func goModRequires(data []byte) []string {
	var keys []string
	inBlock := false
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock:
			if fields := strings.Fields(line); len(fields) >= 1 && !strings.HasPrefix(fields[0], "//") {
				keys = append(keys, fields[0])
			}
		case strings.HasPrefix(line, "require "):
			if fields := strings.Fields(line); len(fields) >= 2 {
				keys = append(keys, fields[1])
			}
		}
	}
	return keys
}

func requirementNames(data []byte) []string {
	var keys []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Strip version constraints and extras: "flask[async]>=2.0" -> "flask".
		name := strings.FieldsFunc(line, func(r rune) bool {
			return strings.ContainsRune("=<>!~;[ ", r)
		})
		if len(name) > 0 {
			keys = append(keys, strings.ToLower(name[0]))
		}
	}
	return keys
}

// tomlSectionKeys collects keys from dependency-carrying TOML sections.
// A simple line scan is enough; the catalog matches on bare names.
func tomlSectionKeys(data []byte) []string {
	var keys []string
	inDeps := false
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") {
			section := strings.Trim(line, "[]")
			inDeps = strings.Contains(section, "dependencies")
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, "=\""); i > 0 {
			key := strings.TrimSpace(strings.Trim(line[:i], "\" "))
			if key != "" {
				keys = append(keys, key)
			}
		} else if strings.HasPrefix(line, "\"") {
			// pyproject list form: "django>=4.0",
			name := strings.FieldsFunc(strings.Trim(line, "\", "), func(r rune) bool {
				return strings.ContainsRune("=<>!~;[", r)
			})
			if len(name) > 0 {
				keys = append(keys, strings.ToLower(name[0]))
			}
		}
	}
	return keys
}

func gemfileGems(data []byte) []string {
	var keys []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		rest := strings.TrimPrefix(line, "gem ")
		rest = strings.Trim(strings.SplitN(rest, ",", 2)[0], "'\" ")
		if rest != "" {
			keys = append(keys, rest)
		}
	}
	return keys
}

func rawDependencyLines(data []byte) []string {
	var keys []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.Contains(line, "artifactId") || strings.Contains(line, "implementation") {
			keys = append(keys, line)
		}
	}
	return keys
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
