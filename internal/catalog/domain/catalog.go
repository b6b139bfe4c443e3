package catalog

import (
	"errors"
	"sort"
)

// Catalog errors
var (
	ErrNotFound  = errors.New("entity not found")
	ErrNilEntity = errors.New("entity cannot be nil")
)

type entry struct {
	entity     Entity
	provenance Provenance
}

// Catalog maps (kind, id) to validated entities. It is populated through
// Add during a build and treated as immutable afterwards, so any number
// of readers may share it without locking. A rebuild produces a new
// Catalog rather than mutating this one.
type Catalog struct {
	entries map[Kind]map[string]entry
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[Kind]map[string]entry)}
}

// Add inserts a validated entity, enforcing id uniqueness per kind.
// When the id is already present, the incoming record wins only if the
// existing record came from a catalog-layout source and the incoming one
// is per-item (per-item is authoritative). Every other duplicate keeps
// the first-seen record. In both cases a duplicate-id warning describing
// the losing record is returned; a nil warning means no conflict.
func (c *Catalog) Add(e Entity, prov Provenance) (*Warning, error) {
	if e == nil {
		return nil, ErrNilEntity
	}
	kind := e.EntityKind()
	byID, ok := c.entries[kind]
	if !ok {
		byID = make(map[string]entry)
		c.entries[kind] = byID
	}

	existing, dup := byID[e.EntityID()]
	if !dup {
		byID[e.EntityID()] = entry{entity: e, provenance: prov}
		return nil, nil
	}

	if existing.provenance.Layout == LayoutCatalog && prov.Layout == LayoutPerItem {
		byID[e.EntityID()] = entry{entity: e, provenance: prov}
		return &Warning{
			Code: WarnDuplicateID,
			Path: existing.provenance.Path,
			Kind: kind,
			ID:   e.EntityID(),
			Msg:  "superseded by per-item record " + prov.Path,
		}, nil
	}

	return &Warning{
		Code: WarnDuplicateID,
		Path: prov.Path,
		Kind: kind,
		ID:   e.EntityID(),
		Msg:  "already defined by " + existing.provenance.Path,
	}, nil
}

// GetByID returns the entity with the given id within a kind.
func (c *Catalog) GetByID(kind Kind, id string) (Entity, error) {
	if byID, ok := c.entries[kind]; ok {
		if e, ok := byID[id]; ok {
			return e.entity, nil
		}
	}
	return nil, ErrNotFound
}

// ProvenanceOf returns where the entity with the given id was loaded from.
func (c *Catalog) ProvenanceOf(kind Kind, id string) (Provenance, error) {
	if byID, ok := c.entries[kind]; ok {
		if e, ok := byID[id]; ok {
			return e.provenance, nil
		}
	}
	return Provenance{}, ErrNotFound
}

// ListByKind returns all entities of a kind sorted by id. The order is
// stable and independent of filesystem traversal order.
func (c *Catalog) ListByKind(kind Kind) []Entity {
	byID := c.entries[kind]
	result := make([]Entity, 0, len(byID))
	for _, e := range byID {
		result = append(result, e.entity)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EntityID() < result[j].EntityID()
	})
	return result
}

// Len returns the total number of entities across all kinds.
func (c *Catalog) Len() int {
	n := 0
	for _, byID := range c.entries {
		n += len(byID)
	}
	return n
}

// LenByKind returns the number of entities of a single kind.
func (c *Catalog) LenByKind(kind Kind) int {
	return len(c.entries[kind])
}
