package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repolens/internal/report"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the analysis whenever the tree changes",
	Long: `Watches the target tree and re-runs the one-shot analysis after each
change, debounced by --interval. Every run is still an independent,
stateless pass; nothing is carried between runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "debounce interval between change and re-run")

	watchCmd.Flags().IntVar(&depthLimit, "depth", 3, "directory depth limit for the walk")
	watchCmd.Flags().IntVar(&maxFiles, "max-files", 1000, "file-count sampling cap")
	watchCmd.Flags().StringArrayVar(&excludeGlobs, "exclude", nil, "glob or directory name to skip (repeatable)")
	watchCmd.Flags().Int64Var(&largeFileBytes, "large-file-threshold", 10*1024*1024, "size in bytes above which a file is flagged")
	watchCmd.Flags().IntVar(&maxNesting, "max-nesting", 4, "directory nesting depth the detector tolerates")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	runOnce := func() {
		res, err := analyzeTarget(cmd, args)
		if err != nil {
			logger.Error("analysis failed", zap.Error(err))
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Term(res))
	}
	runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories down to the walk depth; deeper changes don't
	// affect the fingerprint anyway.
	if err := addWatches(watcher, root, depthLimit); err != nil {
		return err
	}
	logger.Info("watching", zap.String("root", root), zap.Duration("interval", watchInterval))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isNoise(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				watchCreated(watcher, root, ev.Name, depthLimit)
			}
			// Debounce: restart the timer on every event burst.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-pending:
			runOnce()
		}
	}
}

func addWatches(watcher *fsnotify.Watcher, root string, depth int) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable subtrees are simply unwatched
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := d.Name()
		if name == ".git" || name == "node_modules" {
			return filepath.SkipDir
		}
		if rel != "." && strings.Count(filepath.ToSlash(rel), "/") >= depth {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchCreated registers a directory created after startup, honoring the
// same depth cutoff as the initial registration. Non-directories and paths
// outside the root are ignored.
func watchCreated(watcher *fsnotify.Watcher, root, created string, depth int) {
	info, err := os.Stat(created)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(root, created)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	relDepth := strings.Count(filepath.ToSlash(rel), "/") + 1
	if relDepth > depth {
		return
	}
	_ = addWatches(watcher, created, depth-relDepth)
}

func isNoise(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasPrefix(base, ".#")
}
