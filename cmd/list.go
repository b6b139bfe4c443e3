package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/presentation"
)

var (
	listKind   string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Long: `Build the catalog and list its entries, ordered by id within
each kind.

Examples:
  # List everything as a table
  grimoire list

  # Only spells
  grimoire list --kind spell

  # JSON for scripting
  grimoire list --kind weapon --format json | jq '.[].id'`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "",
		"filter by kind: armor, weapon, or spell")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table",
		"output format: table or json")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	cat, _, err := svc.Reload(context.Background(), contentRoots()...)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	kinds := catalog.CatalogKinds()
	if listKind != "" {
		kind, err := catalog.ParseKind(listKind)
		if err != nil || !kind.Catalogable() {
			return fmt.Errorf("unknown kind %q (expected armor, weapon, or spell)", listKind)
		}
		kinds = []catalog.Kind{kind}
	}

	var entities []catalog.Entity
	for _, kind := range kinds {
		entities = append(entities, cat.ListByKind(kind)...)
	}

	formatter := presentation.NewFormatter(os.Stdout)
	switch listFormat {
	case "json":
		return formatter.FormatJSON(presentation.FromEntities(entities))
	case "table":
		return formatter.FormatEntityTable(entities)
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", listFormat)
	}
}
