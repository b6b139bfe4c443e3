package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/grimoire/internal/catalog/domain"
)

func mapRoot(name string, hint catalog.Kind, files map[string]string) Root {
	fsys := fstest.MapFS{}
	for path, content := range files {
		fsys[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return Root{FS: fsys, Name: name, Hint: hint}
}

func walkAll(t *testing.T, roots ...Root) []SourceFile {
	t.Helper()
	var files []SourceFile
	err := NewLoader(roots).Walk(func(f SourceFile) error {
		files = append(files, f)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestLoader_ClassifiesLayouts(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		content   string
		hint      catalog.Kind
		wantClass FileClass
		wantKind  catalog.Kind
	}{
		{
			name:      "catalog layout armors",
			path:      "armors.yaml",
			content:   "armors:\n  - id: leather\n    name: Leather\n",
			wantClass: ClassCatalog,
			wantKind:  catalog.KindArmor,
		},
		{
			name:      "catalog layout weapons",
			path:      "weapons.yml",
			content:   "weapons:\n  - id: sword\n",
			wantClass: ClassCatalog,
			wantKind:  catalog.KindWeapon,
		},
		{
			name:      "per-item with wrapper key",
			path:      "fireball.yaml",
			content:   "spell:\n  id: fireball\n  name: Fireball\n",
			wantClass: ClassPerItem,
			wantKind:  catalog.KindSpell,
		},
		{
			name:      "generic item wrapper kind from subdirectory",
			path:      "weapons/dagger.yaml",
			content:   "item:\n  id: dagger\n  name: Dagger\n",
			wantClass: ClassPerItem,
			wantKind:  catalog.KindWeapon,
		},
		{
			name:      "generic item wrapper kind from root hint",
			path:      "fog.yaml",
			content:   "item:\n  id: fog\n  name: Fog\n",
			hint:      catalog.KindSpell,
			wantClass: ClassPerItem,
			wantKind:  catalog.KindSpell,
		},
		{
			name:      "generic item wrapper without kind signal is unrecognized",
			path:      "orphan.yaml",
			content:   "item:\n  id: orphan\n  name: Orphan\n",
			wantClass: ClassUnrecognized,
		},
		{
			name:      "per-item kind from subdirectory",
			path:      "armor/leather.yaml",
			content:   "id: leather\nname: Leather\n",
			wantClass: ClassPerItem,
			wantKind:  catalog.KindArmor,
		},
		{
			name:      "per-item kind from root hint",
			path:      "fireball.yaml",
			content:   "id: fireball\nname: Fireball\n",
			hint:      catalog.KindSpell,
			wantClass: ClassPerItem,
			wantKind:  catalog.KindSpell,
		},
		{
			name:      "property definition by filename",
			path:      "properties_2024_basic.yaml",
			content:   "id: looks-like-an-entity\nname: Trap\n",
			wantClass: ClassPropertyDefinition,
			wantKind:  catalog.KindPropertyDefinition,
		},
		{
			name:      "mapping without id is unrecognized",
			path:      "notes.yaml",
			content:   "title: campaign notes\n",
			wantClass: ClassUnrecognized,
		},
		{
			name:      "id without any kind signal is unrecognized",
			path:      "orphan.yaml",
			content:   "id: orphan\nname: Orphan\n",
			wantClass: ClassUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mapRoot("content", tt.hint, map[string]string{tt.path: tt.content})

			files := walkAll(t, root)

			require.Len(t, files, 1)
			require.Equal(t, tt.wantClass, files[0].Class)
			require.Equal(t, tt.wantKind, files[0].Kind)
			require.NoError(t, files[0].Err)
		})
	}
}

func TestLoader_MalformedYAMLCarriesError(t *testing.T) {
	root := mapRoot("content", "", map[string]string{
		"broken.yaml": "id: [unclosed\n",
	})

	files := walkAll(t, root)

	require.Len(t, files, 1)
	require.Equal(t, ClassUnrecognized, files[0].Class)
	require.Error(t, files[0].Err)
}

func TestLoader_SkipsNonYAMLFiles(t *testing.T) {
	root := mapRoot("content", "", map[string]string{
		"readme.md":         "# docs\n",
		"armor/.gitkeep":    "",
		"armor/plate.yaml":  "id: plate\nname: Plate\n",
		"armor/sketch.json": "{}",
	})

	files := walkAll(t, root)

	require.Len(t, files, 1)
	require.Equal(t, "content/armor/plate.yaml", files[0].Path)
}

func TestLoader_RootOrderAndLexicalOrder(t *testing.T) {
	items := mapRoot("items", "", map[string]string{
		"weapons/sword.yaml": "id: sword\nname: Sword\n",
		"armor/chain.yaml":   "id: chain\nname: Chain\n",
	})
	spells := mapRoot("spells", catalog.KindSpell, map[string]string{
		"fog.yaml": "id: fog\nname: Fog\n",
	})

	files := walkAll(t, items, spells)

	require.Len(t, files, 3)
	require.Equal(t, "items/armor/chain.yaml", files[0].Path)
	require.Equal(t, "items/weapons/sword.yaml", files[1].Path)
	require.Equal(t, "spells/fog.yaml", files[2].Path)
}

func TestLoader_WalkIsRestartable(t *testing.T) {
	root := mapRoot("items", "", map[string]string{
		"armor/chain.yaml":   "id: chain\nname: Chain\n",
		"weapons/sword.yaml": "id: sword\nname: Sword\n",
	})
	loader := NewLoader([]Root{root})

	collect := func() []string {
		var paths []string
		err := loader.Walk(func(f SourceFile) error {
			paths = append(paths, f.Path)
			return nil
		})
		require.NoError(t, err)
		return paths
	}

	first := collect()
	second := collect()
	require.Equal(t, first, second)
}

func TestLoader_PropertyFileIsNotParsed(t *testing.T) {
	// Property definition files are classified by filename alone, so
	// even invalid YAML inside them never surfaces as a parse failure.
	root := mapRoot("items", "", map[string]string{
		"properties_broken.yaml": "id: [unclosed\n",
	})

	files := walkAll(t, root)

	require.Len(t, files, 1)
	require.Equal(t, ClassPropertyDefinition, files[0].Class)
	require.NoError(t, files[0].Err)
}
