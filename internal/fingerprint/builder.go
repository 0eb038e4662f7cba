package fingerprint

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls the bounded walk.
type Config struct {
	// Depth is how many directory levels below the root are enumerated.
	Depth int
	// MaxFiles caps enumeration; beyond it the walk stops descending and
	// the fingerprint is flagged Sampled.
	MaxFiles int
	// Exclude skips matching directory names or relative glob patterns,
	// on top of the always-excluded VCS internals.
	Exclude []string
	// LargeFileBytes is the size above which a file is recorded in
	// LargeFiles for the oversized-file predicate.
	LargeFileBytes int64
	// Workers bounds the concurrent directory readers.
	Workers int
}

// DefaultConfig returns the documented defaults: depth 3, 1000-file cap,
// 10 MB large-file threshold, worker count clamped to [4,20].
func DefaultConfig() Config {
	workers := runtime.NumCPU()
	if workers > 20 {
		workers = 20
	}
	if workers < 4 {
		workers = 4
	}
	return Config{
		Depth:          3,
		MaxFiles:       1000,
		LargeFileBytes: 10 * 1024 * 1024,
		Workers:        workers,
		Exclude: []string{
			"node_modules",
			"vendor",
			"dist",
			"build",
			".next",
			"target",
			"__pycache__",
			".venv",
			".cache",
			".idea",
		},
	}
}

// vcsInternals are never traversed regardless of configuration.
var vcsInternals = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Builder performs the read-only walk. It holds no state across Build
// calls; one Builder may serve concurrent runs.
type Builder struct {
	cfg Config
}

func NewBuilder(cfg Config) *Builder {
	if cfg.Depth <= 0 {
		cfg.Depth = 3
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.LargeFileBytes <= 0 {
		cfg.LargeFileBytes = 10 * 1024 * 1024
	}
	return &Builder{cfg: cfg}
}

// Build walks root and returns the sealed Fingerprint. The only fatal
// condition is the root itself being unreadable; unreadable subdirectories
// set PartialRead and the walk continues. Directory reads run on a bounded
// worker pool and are joined before the Fingerprint is returned, so no
// caller can observe a partially built snapshot.
func (b *Builder) Build(ctx context.Context, root string) (*Fingerprint, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	fp := &Fingerprint{
		Root:      root,
		Manifests: make(map[string][]string),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)

	// scan lists a single directory and fans subdirectories out onto the
	// pool. When the pool is saturated TryGo fails and the child is
	// scanned inline on the current worker, so no task ever blocks
	// waiting for a slot.
	var scan func(rel string, depth int) error
	scan = func(rel string, depth int) error {
		if err := gctx.Err(); err != nil {
			return err
		}

		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			mu.Lock()
			fp.PartialRead = true
			mu.Unlock()
			return nil
		}

		for _, e := range entries {
			name := e.Name()
			child := name
			if rel != "" {
				child = rel + "/" + name
			}

			if e.IsDir() {
				if vcsInternals[name] || b.excluded(child, name) {
					continue
				}
				mu.Lock()
				fp.Tree = append(fp.Tree, TreeEntry{Depth: depth + 1, Path: child})
				if depth+1 > fp.MaxDepth {
					fp.MaxDepth = depth + 1
				}
				capped := fp.TotalFiles >= b.cfg.MaxFiles
				mu.Unlock()
				if depth+1 < b.cfg.Depth+1 && !capped {
					childDepth := depth + 1
					if !g.TryGo(func() error { return scan(child, childDepth) }) {
						if err := scan(child, childDepth); err != nil {
							return err
						}
					}
				}
				continue
			}

			if b.excluded(child, name) {
				continue
			}

			var size int64
			if fi, err := e.Info(); err == nil {
				size = fi.Size()
			}

			mu.Lock()
			fp.TotalFiles++
			if fp.TotalFiles > b.cfg.MaxFiles {
				fp.Sampled = true
				mu.Unlock()
				return nil
			}
			fp.Files = append(fp.Files, child)
			if depth+1 > fp.MaxDepth {
				fp.MaxDepth = depth + 1
			}
			if size > b.cfg.LargeFileBytes {
				fp.LargeFiles = append(fp.LargeFiles, LargeFile{Path: child, Size: size})
			}
			mu.Unlock()

			if depth == 0 && isManifest(name) {
				keys := extractManifestKeys(filepath.Join(root, name))
				mu.Lock()
				fp.Manifests[name] = keys
				mu.Unlock()
			}
		}
		return nil
	}

	g.Go(func() error { return scan("", 0) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	fp.seal()
	return fp, nil
}

func (b *Builder) excluded(rel, name string) bool {
	for _, pattern := range b.cfg.Exclude {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if pattern == "" {
			continue
		}
		if pattern == name || pattern == rel {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// FromPaths synthesizes a sealed Fingerprint from a listing, deriving the
// directory tree from path prefixes. Intended for tests and for callers
// that already hold a listing.
func FromPaths(root string, files []string, manifests map[string][]string) *Fingerprint {
	fp := &Fingerprint{
		Root:       root,
		Manifests:  manifests,
		TotalFiles: len(files),
	}
	if fp.Manifests == nil {
		fp.Manifests = make(map[string][]string)
	}

	dirs := make(map[string]int)
	for _, f := range files {
		f = filepath.ToSlash(f)
		isDir := strings.HasSuffix(f, "/")
		f = strings.Trim(f, "/")
		if f == "" {
			continue
		}
		parts := strings.Split(f, "/")
		if len(parts) > fp.MaxDepth {
			fp.MaxDepth = len(parts)
		}
		if isDir {
			// Trailing slash marks an explicit (possibly empty) directory.
			for i := 1; i <= len(parts); i++ {
				dirs[strings.Join(parts[:i], "/")] = i
			}
			continue
		}
		fp.Files = append(fp.Files, f)
		for i := 1; i < len(parts); i++ {
			dirs[strings.Join(parts[:i], "/")] = i
		}
	}
	for d, depth := range dirs {
		fp.Tree = append(fp.Tree, TreeEntry{Depth: depth, Path: d})
	}
	sort.Slice(fp.Tree, func(i, j int) bool { return fp.Tree[i].Path < fp.Tree[j].Path })
	fp.TotalFiles = len(fp.Files)
	fp.seal()
	return fp
}
