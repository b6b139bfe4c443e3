package catalog

// Layout indicates which on-disk shape a record was extracted from.
type Layout int

const (
	// LayoutPerItem is one YAML file holding exactly one entity record,
	// optionally wrapped under a singular key. This is the authoritative
	// source shape.
	LayoutPerItem Layout = iota
	// LayoutCatalog is a YAML file with a pluralized array field holding
	// many records. Retained for backward compatibility only.
	LayoutCatalog
)

// String returns a human-readable representation of the Layout.
func (l Layout) String() string {
	switch l {
	case LayoutPerItem:
		return "per-item"
	case LayoutCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// Provenance records where a validated entity came from.
type Provenance struct {
	// Path is the source file path relative to its root.
	Path string
	// Index is the entry's position within a catalog-layout sequence,
	// or -1 for per-item records.
	Index int
	// Layout is the detected source shape.
	Layout Layout
}
