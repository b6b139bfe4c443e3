package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
)

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatJSON(ItemDTO{ID: "leather", Kind: "armor"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "leather", decoded["id"])
	require.Contains(t, buf.String(), "\n  \"id\"", "output should be indented")
}

func TestFormatEntityTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	entities := []catalog.Entity{
		&catalog.Item{ID: "leather", Name: "Leather Armor", Kind: catalog.KindArmor, Category: "light"},
		&catalog.Spell{ID: "fireball", Name: "Fireball", Shape: catalog.ShapeCircle, Dice: "8d6"},
	}

	require.NoError(t, f.FormatEntityTable(entities))

	out := buf.String()
	require.Contains(t, out, "KIND")
	require.Contains(t, out, "leather")
	require.Contains(t, out, "Leather Armor")
	require.Contains(t, out, "fireball")
	require.Contains(t, out, "8d6")
	require.Equal(t, 3, strings.Count(out, "\n"), "header plus one line per entity")
}

func TestFormatEntityTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatEntityTable(nil))
	require.Contains(t, buf.String(), "no entries")
}

func TestFormatReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	rep := ReportDTO{
		BuildID:    "b1",
		Files:      2,
		Records:    5,
		Loaded:     4,
		DurationMs: 1.5,
		Warnings: []WarningDTO{
			{Code: "unrecognized_document", Path: "notes.yaml", Msg: "no known layout"},
		},
		Errors: []ValidationErrorDTO{
			{
				Path:   "armors.yaml",
				Index:  2,
				Kind:   "armor",
				ID:     "plate",
				Fields: []FieldErrorDTO{{Field: "ac.dex_cap", Msg: "must be >= 0"}},
			},
		},
	}

	require.NoError(t, f.FormatReport(rep))

	out := buf.String()
	require.Contains(t, out, "build b1")
	require.Contains(t, out, "2 files, 5 records, 4 loaded")
	require.Contains(t, out, "1 invalid")
	require.Contains(t, out, "notes.yaml")
	require.Contains(t, out, "armors.yaml[2]")
	require.Contains(t, out, "ac.dex_cap: must be >= 0")
}

func TestFormatReportClean(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatReport(ReportDTO{BuildID: "b2", Loaded: 3}))
	require.Contains(t, buf.String(), "ok")
}

func TestFormatChanges(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	changes := []ChangeDTO{
		{Kind: "spell", ID: "web", Type: "added"},
		{Kind: "spell", ID: "wall", Type: "removed"},
		{Kind: "spell", ID: "fireball", Type: "modified", Diff: "radius_ft: 20 -> 25"},
	}

	require.NoError(t, f.FormatChanges(changes))

	out := buf.String()
	require.Contains(t, out, "+ web")
	require.Contains(t, out, "- wall")
	require.Contains(t, out, "~ fireball")
	require.Contains(t, out, "radius_ft: 20 -> 25")
}

func TestFormatChangesEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatChanges(nil))
	require.Contains(t, buf.String(), "no changes")
}
