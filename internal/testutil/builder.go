// Package testutil builds content trees for tests: in-memory via
// fstest.MapFS or on disk for watcher and CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Tree holds the generated content split by root, mirroring the
// items/spells directory split used in real campaigns.
type Tree struct {
	Items  fstest.MapFS
	Spells fstest.MapFS
}

// Builder accumulates content files and renders them on Build.
type Builder struct {
	t      *testing.T
	items  map[string]string
	spells map[string]string
}

// NewBuilder creates a builder for the given test.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		t:      t,
		items:  make(map[string]string),
		spells: make(map[string]string),
	}
}

// WithArmor adds a per-item armor file with optional configuration.
func (b *Builder) WithArmor(id string, opts ...ItemOption) *Builder {
	item := defaultArmor(id)
	for _, opt := range opts {
		opt(&item)
	}
	b.items["armor/"+id+".yaml"] = b.marshal(item.fields())
	return b
}

// WithWeapon adds a per-item weapon file with optional configuration.
func (b *Builder) WithWeapon(id string, opts ...ItemOption) *Builder {
	item := defaultWeapon(id)
	for _, opt := range opts {
		opt(&item)
	}
	b.items["weapon/"+id+".yaml"] = b.marshal(item.fields())
	return b
}

// WithSpell adds a per-item spell file, wrapped under a "spell" key.
func (b *Builder) WithSpell(id string, opts ...SpellOption) *Builder {
	spell := defaultSpell(id)
	for _, opt := range opts {
		opt(&spell)
	}
	b.spells[id+".yaml"] = b.marshal(map[string]any{"spell": spell.fields()})
	return b
}

// WithArmorCatalog adds a catalog-layout file holding many armors.
func (b *Builder) WithArmorCatalog(filename string, ids ...string) *Builder {
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		item := defaultArmor(id)
		entries = append(entries, item.fields())
	}
	b.items[filename] = b.marshal(map[string]any{"armors": entries})
	return b
}

// WithWeaponCatalog adds a catalog-layout file holding many weapons.
func (b *Builder) WithWeaponCatalog(filename string, ids ...string) *Builder {
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		item := defaultWeapon(id)
		entries = append(entries, item.fields())
	}
	b.items[filename] = b.marshal(map[string]any{"weapons": entries})
	return b
}

// WithPropertyFile adds a shared property-definition file. The name
// gets the properties_ prefix so the loader skips it.
func (b *Builder) WithPropertyFile(name string, body string) *Builder {
	b.items["properties_"+name+".yaml"] = body
	return b
}

// WithItemFile adds a raw file under the items root. Escape hatch for
// malformed or unusual documents.
func (b *Builder) WithItemFile(path, content string) *Builder {
	b.items[path] = content
	return b
}

// WithSpellFile adds a raw file under the spells root.
func (b *Builder) WithSpellFile(path, content string) *Builder {
	b.spells[path] = content
	return b
}

// Build renders the accumulated files as in-memory filesystems.
func (b *Builder) Build() Tree {
	b.t.Helper()
	tree := Tree{Items: fstest.MapFS{}, Spells: fstest.MapFS{}}
	for path, content := range b.items {
		tree.Items[path] = &fstest.MapFile{Data: []byte(content)}
	}
	for path, content := range b.spells {
		tree.Spells[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return tree
}

// WriteTo writes the accumulated files under dir and returns the items
// and spells root paths. Used by tests that need a real filesystem.
func (b *Builder) WriteTo(dir string) (itemsDir, spellsDir string) {
	b.t.Helper()
	itemsDir = filepath.Join(dir, "items")
	spellsDir = filepath.Join(dir, "spells")
	b.writeFiles(itemsDir, b.items)
	b.writeFiles(spellsDir, b.spells)
	return itemsDir, spellsDir
}

func (b *Builder) writeFiles(root string, files map[string]string) {
	b.t.Helper()
	require.NoError(b.t, os.MkdirAll(root, 0o755))
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(b.t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(b.t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func (b *Builder) marshal(doc any) string {
	b.t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(b.t, err)
	return string(data)
}
