package catalog

import (
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/grimoire/internal/catalog/domain"
)

// ChangeType classifies how an entity differs between two catalogs.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeRemoved
	ChangeModified
)

// String returns a human-readable representation of the ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change describes one entity that differs between two catalog builds.
type Change struct {
	Kind catalog.Kind
	ID   string
	Type ChangeType
	// Diff is a rendered text diff of the entity's definition. Empty for
	// additions and removals.
	Diff string
}

// DiffCatalogs compares two builds and returns the per-entity changes,
// ordered by kind then id. Used by watch mode to report what a reload
// actually changed.
func DiffCatalogs(before, after *catalog.Catalog) []Change {
	var changes []Change
	dmp := diffmatchpatch.New()

	for _, kind := range catalog.CatalogKinds() {
		seen := make(map[string]bool)

		for _, entity := range before.ListByKind(kind) {
			seen[entity.EntityID()] = true

			current, err := after.GetByID(kind, entity.EntityID())
			if err != nil {
				changes = append(changes, Change{Kind: kind, ID: entity.EntityID(), Type: ChangeRemoved})
				continue
			}

			oldText := renderEntity(entity)
			newText := renderEntity(current)
			if oldText == newText {
				continue
			}
			diffs := dmp.DiffMain(oldText, newText, false)
			changes = append(changes, Change{
				Kind: kind,
				ID:   entity.EntityID(),
				Type: ChangeModified,
				Diff: dmp.DiffPrettyText(diffs),
			})
		}

		for _, entity := range after.ListByKind(kind) {
			if !seen[entity.EntityID()] {
				changes = append(changes, Change{Kind: kind, ID: entity.EntityID(), Type: ChangeAdded})
			}
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Kind != changes[j].Kind {
			return changes[i].Kind < changes[j].Kind
		}
		return changes[i].ID < changes[j].ID
	})
	return changes
}

// renderEntity produces a stable textual form of an entity for diffing.
func renderEntity(e catalog.Entity) string {
	out, err := yaml.Marshal(e)
	if err != nil {
		return ""
	}
	return string(out)
}
