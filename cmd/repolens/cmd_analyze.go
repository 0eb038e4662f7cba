package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"repolens/internal/analysis"
	"repolens/internal/antipattern"
	"repolens/internal/fingerprint"
	"repolens/internal/report"
)

var (
	depthLimit     int
	maxFiles       int
	excludeGlobs   []string
	outputFormat   string
	largeFileBytes int64
	maxNesting     int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a repository's structure and print recommendations",
	Long: `Runs the full pipeline against the given path (default: current
directory): fingerprint walk, classification, structure comparison,
anti-pattern detection, and recommendation prioritization.

The exit status is 0 even when findings exist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&depthLimit, "depth", 3, "directory depth limit for the walk")
	analyzeCmd.Flags().IntVar(&maxFiles, "max-files", 1000, "file-count sampling cap")
	analyzeCmd.Flags().StringArrayVar(&excludeGlobs, "exclude", nil, "glob or directory name to skip (repeatable)")
	analyzeCmd.Flags().StringVar(&outputFormat, "format", "term", "output format: term, markdown, or json")
	analyzeCmd.Flags().Int64Var(&largeFileBytes, "large-file-threshold", 10*1024*1024, "size in bytes above which a file is flagged")
	analyzeCmd.Flags().IntVar(&maxNesting, "max-nesting", 4, "directory nesting depth the detector tolerates")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	res, err := analyzeTarget(cmd, args)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		out, err := report.JSON(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "markdown":
		fmt.Fprint(cmd.OutOrStdout(), report.Markdown(res))
	case "term":
		fmt.Fprint(cmd.OutOrStdout(), report.Term(res))
	default:
		return fmt.Errorf("unknown format %q (want term, markdown, or json)", outputFormat)
	}
	return nil
}

// analyzeTarget wires one full run; shared by analyze, scaffold, and watch.
func analyzeTarget(cmd *cobra.Command, args []string) (*analysis.Result, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	runner := analysis.NewRunner(cat, analysis.Options{
		Fingerprint: fingerprintConfig(),
		Detector:    antipattern.Config{MaxDepth: maxNesting},
		Logger:      logger,
	})
	return runner.Analyze(cmd.Context(), root)
}

func fingerprintConfig() fingerprint.Config {
	cfg := fingerprint.DefaultConfig()
	cfg.Depth = depthLimit
	cfg.MaxFiles = maxFiles
	cfg.LargeFileBytes = largeFileBytes
	cfg.Exclude = append(cfg.Exclude, excludeGlobs...)
	return cfg
}
