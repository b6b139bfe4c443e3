package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, []string{"content/items"}, cfg.Content.ItemDirs)
	require.Equal(t, []string{"content/spells"}, cfg.Content.SpellDirs)
	require.True(t, cfg.Watch.AutoReload)
	require.Equal(t, 250, cfg.Watch.DebounceMs)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 300, cfg.Cache.TTLSeconds)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestDefaultsPassValidation(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestContentDirs(t *testing.T) {
	content := ContentConfig{
		ItemDirs:  []string{"a", "b"},
		SpellDirs: []string{"c"},
	}
	require.Equal(t, []string{"a", "b", "c"}, content.Dirs())
}

func TestValidateContent_Empty(t *testing.T) {
	err := ValidateContent(ContentConfig{})
	require.NoError(t, err, "empty config should be valid (uses defaults)")
}

func TestValidateContent_EmptyItemDir(t *testing.T) {
	err := ValidateContent(ContentConfig{ItemDirs: []string{"content/items", ""}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "item_dirs[1]")
}

func TestValidateContent_EmptySpellDir(t *testing.T) {
	err := ValidateContent(ContentConfig{SpellDirs: []string{""}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "spell_dirs[0]")
}

func TestValidateWatch(t *testing.T) {
	require.NoError(t, ValidateWatch(WatchConfig{DebounceMs: 0}))

	err := ValidateWatch(WatchConfig{DebounceMs: -1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "debounce_ms")
}

func TestValidateCache(t *testing.T) {
	require.NoError(t, ValidateCache(CacheConfig{TTLSeconds: 300, CleanupSeconds: 600}))
	require.Error(t, ValidateCache(CacheConfig{TTLSeconds: -1}))
	require.Error(t, ValidateCache(CacheConfig{CleanupSeconds: -1}))
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{
			name:    "empty config is valid",
			tracing: TracingConfig{},
		},
		{
			name:    "sample rate above one",
			tracing: TracingConfig{SampleRate: 1.5},
			wantErr: "sample_rate",
		},
		{
			name:    "negative sample rate",
			tracing: TracingConfig{SampleRate: -0.1},
			wantErr: "sample_rate",
		},
		{
			name:    "unknown exporter",
			tracing: TracingConfig{Exporter: "statsd"},
			wantErr: "exporter",
		},
		{
			name:    "file exporter without path is fine while disabled",
			tracing: TracingConfig{Exporter: "file"},
		},
		{
			name:    "enabled file exporter requires path",
			tracing: TracingConfig{Enabled: true, Exporter: "file"},
			wantErr: "file_path",
		},
		{
			name:    "enabled otlp exporter requires endpoint",
			tracing: TracingConfig{Enabled: true, Exporter: "otlp"},
			wantErr: "otlp_endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	// The template must decode as YAML and carry the defaults
	var raw struct {
		Content struct {
			ItemDirs  []string `yaml:"item_dirs"`
			SpellDirs []string `yaml:"spell_dirs"`
		} `yaml:"content"`
		Watch struct {
			AutoReload bool `yaml:"auto_reload"`
			DebounceMs int  `yaml:"debounce_ms"`
		} `yaml:"watch"`
		Cache struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"cache"`
	}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Equal(t, []string{"content/items"}, raw.Content.ItemDirs)
	require.Equal(t, []string{"content/spells"}, raw.Content.SpellDirs)
	require.True(t, raw.Watch.AutoReload)
	require.Equal(t, 250, raw.Watch.DebounceMs)
	require.True(t, raw.Cache.Enabled)
}

func TestWriteDefaultConfig_BadDir(t *testing.T) {
	// A file where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteDefaultConfig(filepath.Join(blocker, "sub", "config.yaml"))
	require.Error(t, err)
}
