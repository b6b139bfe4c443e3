package testutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	application "github.com/zjrosen/grimoire/internal/catalog/application"
	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/testutil"
)

func TestStandardContent(t *testing.T) {
	tree := testutil.NewBuilder(t).
		WithStandardContent().
		Build()

	svc := application.NewService()
	cat, rep, err := svc.Reload(context.Background(), roots(tree)...)
	require.NoError(t, err)
	require.False(t, rep.HasErrors())

	require.Equal(t, 2, cat.LenByKind(catalog.KindArmor))
	require.Equal(t, 3, cat.LenByKind(catalog.KindWeapon), "per-item dagger plus catalog club and mace")
	require.Equal(t, 2, cat.LenByKind(catalog.KindSpell))

	// The property file contributes nothing
	require.Equal(t, 7, cat.Len())
}

func TestConflictingContent(t *testing.T) {
	tree := testutil.NewBuilder(t).
		WithConflictingContent("leather").
		Build()

	svc := application.NewService()
	cat, rep, err := svc.Reload(context.Background(), roots(tree)...)
	require.NoError(t, err)

	// Per-item layout supersedes the catalog entry
	armor, err := cat.GetByID(catalog.KindArmor, "leather")
	require.NoError(t, err)
	require.Equal(t, "Per-Item leather", armor.EntityName())

	require.Len(t, rep.Warnings, 1)
	require.Equal(t, catalog.WarnDuplicateID, rep.Warnings[0].Code)
}
