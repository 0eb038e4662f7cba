package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func newWatcher(t *testing.T) *fsnotify.Watcher {
	t.Helper()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func watches(w *fsnotify.Watcher, path string) bool {
	for _, p := range w.WatchList() {
		if p == path {
			return true
		}
	}
	return false
}

func TestAddWatchesDepthLimit(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c", "d")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t)
	if err := addWatches(w, root, 2); err != nil {
		t.Fatalf("addWatches failed: %v", err)
	}

	if !watches(w, root) {
		t.Error("root is not watched")
	}
	if !watches(w, filepath.Join(root, "a", "b")) {
		t.Error("directory within the depth limit is not watched")
	}
	if watches(w, filepath.Join(root, "a", "b", "c")) {
		t.Error("directory beyond the depth limit is watched")
	}
}

func TestWatchCreatedRegistersNewDirs(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t)
	if err := addWatches(w, root, 3); err != nil {
		t.Fatalf("addWatches failed: %v", err)
	}

	// A directory tree created after startup must become watched too.
	created := filepath.Join(root, "newdir")
	nested := filepath.Join(created, "nested")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	watchCreated(w, root, created, 3)

	if !watches(w, created) {
		t.Error("directory created after startup is not watched")
	}
	if !watches(w, nested) {
		t.Error("subtree of a created directory is not watched")
	}
}

func TestWatchCreatedIgnoresFilesAndDeepPaths(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t)
	if err := addWatches(w, root, 2); err != nil {
		t.Fatalf("addWatches failed: %v", err)
	}

	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	watchCreated(w, root, file, 2)
	if watches(w, file) {
		t.Error("a plain file must not be watched")
	}

	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	watchCreated(w, root, deep, 2)
	if watches(w, deep) {
		t.Error("a directory beyond the depth limit must not be watched")
	}
}

func TestIsNoise(t *testing.T) {
	cases := map[string]bool{
		"/r/file.go":    false,
		"/r/file.go~":   true,
		"/r/.file.swp":  true,
		"/r/.#file.go":  true,
		"/r/.gitignore": false,
	}
	for name, want := range cases {
		if got := isNoise(name); got != want {
			t.Errorf("isNoise(%q) = %v, want %v", name, got, want)
		}
	}
}
