package cmd

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/config"
	"github.com/zjrosen/grimoire/internal/testutil"
)

// captureStdout redirects os.Stdout for the duration of fn.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	os.Stdout = old
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

// setTestConfig points the global config at freshly written content.
func setTestConfig(t *testing.T, b *testutil.Builder) {
	t.Helper()
	itemsDir, spellsDir := b.WriteTo(t.TempDir())
	cfg = config.Defaults()
	cfg.Content.ItemDirs = []string{itemsDir}
	cfg.Content.SpellDirs = []string{spellsDir}
}

func TestContentRoots(t *testing.T) {
	cfg = config.Defaults()
	cfg.Content.ItemDirs = []string{"a", "b"}
	cfg.Content.SpellDirs = []string{"c"}

	roots := contentRoots()
	require.Len(t, roots, 3)
	require.Equal(t, catalog.Kind(""), roots[0].Hint)
	require.Equal(t, catalog.KindSpell, roots[2].Hint)
}

func TestNewServiceRejectsInvalidConfig(t *testing.T) {
	cfg = config.Defaults()
	cfg.Watch.DebounceMs = -1

	_, _, err := newService()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestRunValidateCleanContent(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t).WithStandardContent())

	out, err := captureStdout(t, func() error {
		validateFormat = "text"
		return runValidate(validateCmd, nil)
	})
	require.NoError(t, err)
	require.Contains(t, out, "loaded")
	require.Contains(t, out, "ok")
}

func TestRunValidateFailsOnInvalidContent(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t).
		WithSpell("bad", testutil.Dice("3d7")))

	_, err := captureStdout(t, func() error {
		validateFormat = "text"
		return runValidate(validateCmd, nil)
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed validation")
}

func TestRunValidateJSON(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t).WithArmor("leather"))

	out, err := captureStdout(t, func() error {
		validateFormat = "json"
		return runValidate(validateCmd, nil)
	})
	require.NoError(t, err)

	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, float64(1), rep["loaded"])
}

func TestRunListFiltersByKind(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t).WithStandardContent())

	out, err := captureStdout(t, func() error {
		listKind = "spell"
		listFormat = "json"
		return runList(listCmd, nil)
	})
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, "spell", e["kind"])
	}
}

func TestRunListRejectsUnknownKind(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t))

	_, err := captureStdout(t, func() error {
		listKind = "potion"
		listFormat = "table"
		return runList(listCmd, nil)
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown kind")
}

func TestRunGet(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t).
		WithSpell("fireball", testutil.Dice("8d6")))

	out, err := captureStdout(t, func() error {
		return runGet(getCmd, []string{"spell", "fireball"})
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	require.Equal(t, "fireball", entry["id"])
	require.Equal(t, "8d6", entry["dice"])
	require.NotNil(t, entry["source"], "get output carries provenance")
}

func TestRunGetNotFound(t *testing.T) {
	setTestConfig(t, testutil.NewBuilder(t))

	_, err := captureStdout(t, func() error {
		return runGet(getCmd, []string{"spell", "missing"})
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestRunGetUnknownKind(t *testing.T) {
	_, err := captureStdout(t, func() error {
		return runGet(getCmd, []string{"potion", "x"})
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown kind")
}

func TestRunInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile = dir + "/config.yaml"
	t.Cleanup(func() { cfgFile = "" })

	initItemDirs = []string{"campaign/items"}
	initSpellDirs = nil
	t.Cleanup(func() { initItemDirs = nil })

	_, err := captureStdout(t, func() error {
		return runInit(initCmd, nil)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "campaign/items")
	require.Contains(t, string(data), "content/spells", "unset spell dirs fall back to defaults")
}
