package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/grimoire/internal/presentation"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build the catalog and report every problem found",
	Long: `Build the catalog from the configured content directories and
print a build report: files visited, records loaded, warnings, and
per-field validation errors.

The build is fail-soft: one bad record never blocks the rest. The exit
code is non-zero when any record failed validation, so the command
doubles as a CI check for content repositories.

Examples:
  # Validate the configured content directories
  grimoire validate

  # Validate ad-hoc directories
  grimoire validate --items ./campaign/items --spells ./campaign/spells

  # Machine-readable report
  grimoire validate --format json | jq '.errors'`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text",
		"output format: text or json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	svc, closeSvc, err := newService()
	if err != nil {
		return err
	}
	defer closeSvc()

	_, rep, err := svc.Reload(context.Background(), contentRoots()...)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	formatter := presentation.NewFormatter(os.Stdout)
	dto := presentation.FromReport(rep)

	switch validateFormat {
	case "json":
		if err := formatter.FormatJSON(dto); err != nil {
			return err
		}
	case "text":
		if err := formatter.FormatReport(dto); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", validateFormat)
	}

	if rep.HasErrors() {
		return fmt.Errorf("%d record(s) failed validation", len(rep.Errors))
	}
	return nil
}
