// Package fingerprint builds an immutable structural snapshot of a
// repository. The snapshot is the sole input to classification and
// comparison; nothing downstream touches the filesystem again.
package fingerprint

import (
	"path"
	"sort"
	"strings"
)

// TreeEntry is one directory in the snapshot, recorded with its depth
// relative to the root (root itself is depth 0).
type TreeEntry struct {
	Depth int    `json:"depth"`
	Path  string `json:"path"`
}

// LargeFile records a file whose size exceeded the configured threshold.
type LargeFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Fingerprint is the immutable snapshot. It is fully materialized before it
// is returned and never mutated afterward; it is safe to share across
// goroutines.
type Fingerprint struct {
	Root string `json:"root"`

	// Files holds sorted slash-separated relative paths, bounded by the
	// depth limit and the sampling cap.
	Files []string `json:"files"`

	// Tree is the ordered (depth, path) directory sequence, sorted by path.
	Tree []TreeEntry `json:"tree"`

	// Manifests maps a manifest filename found at the root (e.g. "go.mod",
	// "package.json") to the dependency keys extracted from its shallow
	// content.
	Manifests map[string][]string `json:"manifests,omitempty"`

	// LargeFiles lists files above the size threshold, for the detector.
	LargeFiles []LargeFile `json:"large_files,omitempty"`

	TotalFiles int `json:"total_files"`
	MaxDepth   int `json:"max_depth"`

	// PartialRead is set when at least one subdirectory was unreadable.
	// The run continues; the flag is surfaced in the report.
	PartialRead bool `json:"partial_read,omitempty"`

	// Sampled is set when the walk stopped at the file-count cap.
	Sampled bool `json:"sampled,omitempty"`

	fileSet map[string]struct{}
	dirSet  map[string]struct{}
}

// seal builds the lookup sets and sorts the public slices. Called exactly
// once by the builder, after all workers have joined.
func (fp *Fingerprint) seal() {
	sort.Strings(fp.Files)
	sort.Slice(fp.Tree, func(i, j int) bool { return fp.Tree[i].Path < fp.Tree[j].Path })
	sort.Slice(fp.LargeFiles, func(i, j int) bool { return fp.LargeFiles[i].Path < fp.LargeFiles[j].Path })

	fp.fileSet = make(map[string]struct{}, len(fp.Files))
	for _, f := range fp.Files {
		fp.fileSet[f] = struct{}{}
	}
	fp.dirSet = make(map[string]struct{}, len(fp.Tree))
	for _, d := range fp.Tree {
		fp.dirSet[d.Path] = struct{}{}
	}
}

// HasFile reports whether the exact relative path was seen as a file.
func (fp *Fingerprint) HasFile(rel string) bool {
	_, ok := fp.fileSet[path.Clean(rel)]
	return ok
}

// HasDir reports whether the exact relative path was seen as a directory.
func (fp *Fingerprint) HasDir(rel string) bool {
	_, ok := fp.dirSet[strings.TrimSuffix(path.Clean(rel), "/")]
	return ok
}

// HasPath reports whether rel exists as either a file or a directory.
// Template entries ending in "/" denote directories.
func (fp *Fingerprint) HasPath(rel string) bool {
	if strings.HasSuffix(rel, "/") {
		return fp.HasDir(rel)
	}
	return fp.HasFile(rel) || fp.HasDir(rel)
}

// FilesUnder returns the files whose path starts with the given prefix.
// Matching is prefix-based and case-sensitive.
func (fp *Fingerprint) FilesUnder(prefix string) []string {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	var out []string
	for _, f := range fp.Files {
		if strings.HasPrefix(f, prefix) {
			out = append(out, f)
		}
	}
	return out
}

// ManifestKeys returns the extracted dependency keys for a manifest, or nil.
func (fp *Fingerprint) ManifestKeys(name string) []string {
	return fp.Manifests[name]
}

// HasManifestKey reports whether the named manifest declares the key.
func (fp *Fingerprint) HasManifestKey(manifest, key string) bool {
	for _, k := range fp.Manifests[manifest] {
		if k == key {
			return true
		}
	}
	return false
}

// SiblingDirs groups directory names by their parent, for naming checks.
func (fp *Fingerprint) SiblingDirs() map[string][]string {
	groups := make(map[string][]string)
	for _, d := range fp.Tree {
		parent := path.Dir(d.Path)
		if parent == "." {
			parent = ""
		}
		groups[parent] = append(groups[parent], path.Base(d.Path))
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups
}
