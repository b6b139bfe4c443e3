package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/grimoire/internal/catalog/domain"
)

func buildCatalog(t *testing.T, entities ...catalog.Entity) *catalog.Catalog {
	t.Helper()
	c := catalog.NewCatalog()
	for _, e := range entities {
		_, err := c.Add(e, catalog.Provenance{Path: e.EntityID() + ".yaml", Index: -1, Layout: catalog.LayoutPerItem})
		require.NoError(t, err)
	}
	return c
}

func testSpell(id string, radius float64) *catalog.Spell {
	return &catalog.Spell{
		ID:            id,
		Name:          "Spell " + id,
		FormatVersion: 1,
		Shape:         catalog.ShapeCircle,
		RadiusFt:      radius,
	}
}

func TestDiffCatalogs_NoChanges(t *testing.T) {
	before := buildCatalog(t, testSpell("fog", 15))
	after := buildCatalog(t, testSpell("fog", 15))

	require.Empty(t, DiffCatalogs(before, after))
}

func TestDiffCatalogs_AddedAndRemoved(t *testing.T) {
	before := buildCatalog(t, testSpell("fog", 15))
	after := buildCatalog(t, testSpell("web", 20))

	changes := DiffCatalogs(before, after)

	require.Len(t, changes, 2)
	require.Equal(t, "fog", changes[0].ID)
	require.Equal(t, ChangeRemoved, changes[0].Type)
	require.Equal(t, "web", changes[1].ID)
	require.Equal(t, ChangeAdded, changes[1].Type)
}

func TestDiffCatalogs_Modified(t *testing.T) {
	before := buildCatalog(t, testSpell("fog", 15))
	after := buildCatalog(t, testSpell("fog", 30))

	changes := DiffCatalogs(before, after)

	require.Len(t, changes, 1)
	require.Equal(t, ChangeModified, changes[0].Type)
	require.NotEmpty(t, changes[0].Diff)
}

func TestDiffCatalogs_OrderedByKindThenID(t *testing.T) {
	armor := &catalog.Item{ID: "plate", Name: "Plate", FormatVersion: 1, Kind: catalog.KindArmor, Category: "heavy", AC: &catalog.ArmorClass{BaseFormula: "18", DexCap: 0}}
	before := buildCatalog(t)
	after := buildCatalog(t, armor, testSpell("aaa", 5), testSpell("zzz", 10))

	changes := DiffCatalogs(before, after)

	require.Len(t, changes, 3)
	require.Equal(t, catalog.KindArmor, changes[0].Kind)
	require.Equal(t, "aaa", changes[1].ID)
	require.Equal(t, "zzz", changes[2].ID)
}
