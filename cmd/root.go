package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	application "github.com/zjrosen/grimoire/internal/catalog/application"
	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/config"
	"github.com/zjrosen/grimoire/internal/log"
	"github.com/zjrosen/grimoire/internal/tracing"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "A content catalog for battle-map sessions",
	Long: `Grimoire loads armor, weapon, and spell definitions from YAML
content directories, validates them, and serves a consistent catalog to
the table panel and automation.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/grimoire/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringArray("items", nil,
		"items directory (repeatable, overrides config)")
	rootCmd.PersistentFlags().StringArray("spells", nil,
		"spells directory (repeatable, overrides config)")

	// Bind flags to viper
	_ = viper.BindPFlag("content.item_dirs", rootCmd.PersistentFlags().Lookup("items"))
	_ = viper.BindPFlag("content.spell_dirs", rootCmd.PersistentFlags().Lookup("spells"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("content.item_dirs", defaults.Content.ItemDirs)
	viper.SetDefault("content.spell_dirs", defaults.Content.SpellDirs)
	viper.SetDefault("watch.auto_reload", defaults.Watch.AutoReload)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("cache.cleanup_seconds", defaults.Cache.CleanupSeconds)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .grimoire/config.yaml (current directory)
		// 2. ~/.config/grimoire/config.yaml (user config)
		if _, err := os.Stat(".grimoire/config.yaml"); err == nil {
			viper.SetConfigFile(".grimoire/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "grimoire"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// Missing config is fine, run on defaults. Anything else
		// (malformed yaml, unreadable file) should not pass silently.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging enables the file logger when --debug or GRIMOIRE_DEBUG is
// set. Returns a cleanup function, which may be a no-op.
func initLogging() (func(), error) {
	debug := os.Getenv("GRIMOIRE_DEBUG") != "" || debugFlag
	if !debug {
		return func() {}, nil
	}

	logPath := os.Getenv("GRIMOIRE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Grimoire starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

// contentRoots builds loader roots from the configured directories.
func contentRoots() []application.Root {
	var roots []application.Root
	for _, dir := range cfg.Content.ItemDirs {
		roots = append(roots, application.NewDirRoot(dir, ""))
	}
	for _, dir := range cfg.Content.SpellDirs {
		roots = append(roots, application.NewDirRoot(dir, catalog.KindSpell))
	}
	return roots
}

// newService wires a catalog service from the loaded config: document
// cache if enabled, tracing provider if enabled. The returned cleanup
// shuts the tracing provider down.
func newService() (*application.Service, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var opts []application.ServiceOption
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		cleanup := time.Duration(cfg.Cache.CleanupSeconds) * time.Second
		opts = append(opts, application.WithParsedDocumentCache(ttl, cleanup))
	}

	tracingCfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if tracingCfg.Enabled && tracingCfg.Exporter == "file" && tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	opts = append(opts, application.WithTracer(provider.Tracer()))

	svc := application.NewService(opts...)
	cleanup := func() {
		svc.Close()
		_ = provider.Shutdown(context.Background())
	}
	return svc, cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
