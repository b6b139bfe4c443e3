package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/grimoire/internal/config"
)

var (
	initItemDirs  []string
	initSpellDirs []string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config file",
	Long: `Write a commented default config to .grimoire/config.yaml in the
current directory.

With --items/--spells the generated config points at the given content
directories instead of the defaults.

Examples:
  grimoire init
  grimoire init --items ./campaign/items --spells ./campaign/spells`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringArrayVar(&initItemDirs, "items", nil,
		"items directory to record in the config (repeatable)")
	initCmd.Flags().StringArrayVar(&initSpellDirs, "spells", nil,
		"spells directory to record in the config (repeatable)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	configPath := ".grimoire/config.yaml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if err := config.WriteDefaultConfig(configPath); err != nil {
		return err
	}

	if len(initItemDirs) > 0 || len(initSpellDirs) > 0 {
		content := config.ContentConfig{
			ItemDirs:  initItemDirs,
			SpellDirs: initSpellDirs,
		}
		if err := config.ValidateContent(content); err != nil {
			return err
		}
		if content.ItemDirs == nil {
			content.ItemDirs = config.Defaults().Content.ItemDirs
		}
		if content.SpellDirs == nil {
			content.SpellDirs = config.Defaults().Content.SpellDirs
		}
		if err := config.SaveContent(configPath, content); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %s\n", configPath)
	return nil
}
