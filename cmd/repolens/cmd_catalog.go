package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"repolens/internal/antipattern"
	"repolens/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the loaded rule catalog",
	RunE:  runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a rule catalog file's internal consistency",
	Long: `Parses the given catalog and runs the load-time integrity checks:
every template must resolve to a declared classification label, rule
names must be unique, and weights must lie in (0,1]. Exit status is
non-zero on any inconsistency.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "catalog version: %s\n", cat.Version)
	fmt.Fprintf(out, "rules: %d (%d framework, %d language, %d purpose)\n",
		cat.RuleCount(), len(cat.Framework), len(cat.Language), len(cat.Purpose))
	fmt.Fprintf(out, "templates: %d\n", len(cat.Templates))
	for _, t := range cat.Templates {
		fmt.Fprintf(out, "  %-14s %d expected, %d anti-locations\n", t.Label, len(t.Expected), len(t.AntiLocations))
	}
	enabled := cat.AntiPatterns
	if len(enabled) == 0 {
		// An empty catalog list enables every implemented predicate.
		enabled = antipattern.PredicateIDs()
	}
	fmt.Fprintf(out, "anti-patterns: %s\n", strings.Join(enabled, ", "))
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	if _, err := catalog.LoadFile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}
