// Package config provides configuration types and defaults for grimoire.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/grimoire/internal/log"
)

// ContentConfig lists the directories scanned for content files.
type ContentConfig struct {
	// ItemDirs are directories holding armor and weapon files.
	ItemDirs []string `mapstructure:"item_dirs"`

	// SpellDirs are directories holding spell files. Bare spell
	// documents in these directories are typed as spells without
	// needing a wrapper key.
	SpellDirs []string `mapstructure:"spell_dirs"`
}

// Dirs returns every configured content directory, items first.
func (c ContentConfig) Dirs() []string {
	out := make([]string, 0, len(c.ItemDirs)+len(c.SpellDirs))
	out = append(out, c.ItemDirs...)
	out = append(out, c.SpellDirs...)
	return out
}

// WatchConfig controls the filesystem watcher used by `grimoire watch`.
type WatchConfig struct {
	// AutoReload rebuilds the catalog when content files change.
	AutoReload bool `mapstructure:"auto_reload"`

	// DebounceMs is how long to wait after the last change before
	// rebuilding. Editors often emit bursts of events per save.
	// Default: 250
	DebounceMs int `mapstructure:"debounce_ms"`
}

// CacheConfig controls the parsed-document cache used across rebuilds.
type CacheConfig struct {
	// Enabled turns the cache on. Unchanged files are not re-parsed
	// on reload when enabled.
	Enabled bool `mapstructure:"enabled"`

	// TTLSeconds is how long a parsed document stays cached.
	// Default: 300
	TTLSeconds int `mapstructure:"ttl_seconds"`

	// CleanupSeconds is how often expired entries are purged.
	// Default: 600
	CleanupSeconds int `mapstructure:"cleanup_seconds"`
}

// TracingConfig holds trace export configuration for catalog builds.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/grimoire/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Config holds all configuration options for grimoire.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/grimoire/traces/traces.jsonl or empty string if the
// home dir is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "grimoire", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Content: ContentConfig{
			ItemDirs:  []string{"content/items"},
			SpellDirs: []string{"content/spells"},
		},
		Watch: WatchConfig{
			AutoReload: true,
			DebounceMs: 250,
		},
		Cache: CacheConfig{
			Enabled:        true,
			TTLSeconds:     300,
			CleanupSeconds: 600,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// ValidateContent checks content directory configuration for errors.
// Returns nil if the configuration is valid or empty (will use defaults).
func ValidateContent(content ContentConfig) error {
	for i, dir := range content.ItemDirs {
		if dir == "" {
			return fmt.Errorf("content.item_dirs[%d]: path must not be empty", i)
		}
	}
	for i, dir := range content.SpellDirs {
		if dir == "" {
			return fmt.Errorf("content.spell_dirs[%d]: path must not be empty", i)
		}
	}
	return nil
}

// ValidateWatch checks watcher configuration for errors.
func ValidateWatch(watch WatchConfig) error {
	if watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must be non-negative, got %d", watch.DebounceMs)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	if cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be non-negative, got %d", cache.TTLSeconds)
	}
	if cache.CleanupSeconds < 0 {
		return fmt.Errorf("cache.cleanup_seconds must be non-negative, got %d", cache.CleanupSeconds)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the full configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateContent(cfg.Content); err != nil {
		return err
	}
	if err := ValidateWatch(cfg.Watch); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Grimoire Configuration

# Content directories scanned for YAML files
content:
  # Directories holding armor and weapon files
  item_dirs:
    - content/items

  # Directories holding spell files
  # Bare documents here are treated as spells without a wrapper key
  spell_dirs:
    - content/spells

# Watcher settings for 'grimoire watch'
watch:
  auto_reload: true   # Rebuild the catalog when content changes
  debounce_ms: 250    # Quiet period after the last change before rebuilding

# Parsed-document cache
# Unchanged files are not re-parsed across rebuilds
cache:
  enabled: true
  ttl_seconds: 300
  cleanup_seconds: 600

# Trace export for catalog builds
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/grimoire/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: send build traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
