package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/presentation"
)

var getCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Fetch a single catalog entry as JSON",
	Long: `Build the catalog and print one entry by kind and id,
including where it was loaded from.

Examples:
  grimoire get spell fireball
  grimoire get armor leather | jq '.armor_class'`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	kind, err := catalog.ParseKind(args[0])
	if err != nil || !kind.Catalogable() {
		return fmt.Errorf("unknown kind %q (expected armor, weapon, or spell)", args[0])
	}
	id := args[1]

	svc, closeSvc, err := newService()
	if err != nil {
		return err
	}
	defer closeSvc()

	cat, _, err := svc.Reload(context.Background(), contentRoots()...)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	entity, err := cat.GetByID(kind, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("no %s with id %q", kind, id)
		}
		return err
	}
	prov, err := cat.ProvenanceOf(kind, id)
	if err != nil {
		return err
	}

	formatter := presentation.NewFormatter(os.Stdout)
	return formatter.FormatJSON(presentation.FromEntityWithProvenance(entity, prov))
}
