package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repolens/internal/scaffold"
)

var (
	scaffoldOutput string
	withTemplates  bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [path]",
	Short: "Analyze a repository and emit a remediation script",
	Long: `Runs the same pipeline as analyze, then renders the prioritized
recommendations as a POSIX shell script of mkdir/touch steps (plus
inline template bodies with --with-templates).

The script is written to stdout or --output; it is never executed, and
the analyzed repository is never touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScaffold,
}

func init() {
	scaffoldCmd.Flags().StringVarP(&scaffoldOutput, "output", "o", "", "write the script to this path instead of stdout")
	scaffoldCmd.Flags().BoolVar(&withTemplates, "with-templates", false, "inline starter file bodies (.gitignore, LICENSE, CI stub)")

	scaffoldCmd.Flags().IntVar(&depthLimit, "depth", 3, "directory depth limit for the walk")
	scaffoldCmd.Flags().IntVar(&maxFiles, "max-files", 1000, "file-count sampling cap")
	scaffoldCmd.Flags().StringArrayVar(&excludeGlobs, "exclude", nil, "glob or directory name to skip (repeatable)")
	scaffoldCmd.Flags().Int64Var(&largeFileBytes, "large-file-threshold", 10*1024*1024, "size in bytes above which a file is flagged")
	scaffoldCmd.Flags().IntVar(&maxNesting, "max-nesting", 4, "directory nesting depth the detector tolerates")
}

func runScaffold(cmd *cobra.Command, args []string) error {
	res, err := analyzeTarget(cmd, args)
	if err != nil {
		return err
	}

	script := scaffold.Script(res, scaffold.Options{WithTemplates: withTemplates})
	if scaffoldOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	}
	if err := os.WriteFile(scaffoldOutput, []byte(script), 0755); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}
	logger.Info("scaffold script written",
		zap.String("path", scaffoldOutput),
		zap.Int("recommendations", len(res.Recommendations)))
	return nil
}
