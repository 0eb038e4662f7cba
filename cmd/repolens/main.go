package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"repolens/internal/analysis"
	"repolens/internal/catalog"
)

var (
	// Global flags
	verbose     bool
	catalogPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "repolens - repository structure classifier and advisor",
	Long: `repolens inspects a repository's filesystem layout, classifies its
project type against a versioned rule catalog, detects structural
deviations from community conventions, and emits prioritized,
actionable recommendations plus scaffolding artifacts.

It is a one-shot, read-mostly tool: the analyzed repository is never
modified. Findings are not failures; the exit status is non-zero only
when the root path is unreadable or the configuration is invalid.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

// loadCatalog returns the embedded default catalog or the one named by
// --catalog. Integrity failures are fatal before any analysis starts.
func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath != "" {
		return catalog.LoadFile(catalogPath)
	}
	return catalog.Default()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := 1
		var ioErr *analysis.IOError
		var catErr *catalog.IntegrityError
		switch {
		case errors.As(err, &ioErr):
			fmt.Fprintf(os.Stderr, "repolens: %s stage: cannot read %s: %v\n", ioErr.Stage, ioErr.Path, ioErr.Err)
			exitCode = 2
		case errors.As(err, &catErr):
			fmt.Fprintf(os.Stderr, "repolens: %v\n", catErr)
			exitCode = 3
		default:
			fmt.Fprintf(os.Stderr, "repolens: %v\n", err)
		}
		os.Exit(exitCode)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a rule catalog file (default: embedded catalog)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(watchCmd)
}
