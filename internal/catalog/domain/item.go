package catalog

// Entity is implemented by every validated record the catalog can hold.
type Entity interface {
	// EntityID returns the stable id, unique within the entity's kind.
	EntityID() string
	// EntityKind returns the entity's kind.
	EntityKind() Kind
	// EntityName returns the human-readable name.
	EntityName() string
}

// ArmorClass describes an armor's AC contribution.
type ArmorClass struct {
	// BaseFormula is the AC expression, e.g. "11 + dex".
	BaseFormula string
	// DexCap limits the dexterity bonus; always >= 0.
	DexCap int
}

// Item is a validated armor or weapon record.
type Item struct {
	ID            string
	Name          string
	FormatVersion int
	Kind          Kind
	Category      string
	// AC is set for armor only.
	AC *ArmorClass
	// Properties maps flag names (e.g. "finesse", "noisy") to booleans.
	Properties map[string]bool
}

func (i *Item) EntityID() string   { return i.ID }
func (i *Item) EntityKind() Kind   { return i.Kind }
func (i *Item) EntityName() string { return i.Name }
