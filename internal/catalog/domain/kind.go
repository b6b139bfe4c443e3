// Package catalog holds the domain types for the grimoire content catalog:
// entity kinds, validated item and spell records, the catalog container,
// and the warning/error taxonomy produced while building it.
package catalog

import "fmt"

// Kind identifies the type of entity a record describes.
type Kind string

const (
	// KindArmor is a wearable item with an AC contribution.
	KindArmor Kind = "armor"
	// KindWeapon is a wieldable item.
	KindWeapon Kind = "weapon"
	// KindSpell is a castable area effect.
	KindSpell Kind = "spell"
	// KindPropertyDefinition is shared trait metadata. Recognized so the
	// loader can skip it, never admitted into the catalog.
	KindPropertyDefinition Kind = "property_definition"
)

// IsValid returns true if the kind is a known entity kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindArmor, KindWeapon, KindSpell, KindPropertyDefinition:
		return true
	default:
		return false
	}
}

// Catalogable returns true if entities of this kind may enter the catalog.
func (k Kind) Catalogable() bool {
	return k == KindArmor || k == KindWeapon || k == KindSpell
}

// Plural returns the pluralized field name used by catalog-layout files
// (e.g. "armors:", "weapons:").
func (k Kind) Plural() string {
	switch k {
	case KindArmor:
		return "armors"
	case KindWeapon:
		return "weapons"
	case KindSpell:
		return "spells"
	default:
		return string(k) + "s"
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a singular or plural kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "armor", "armors":
		return KindArmor, nil
	case "weapon", "weapons":
		return KindWeapon, nil
	case "spell", "spells":
		return KindSpell, nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
}

// CatalogKinds lists the kinds admitted into the catalog, in a stable order.
func CatalogKinds() []Kind {
	return []Kind{KindArmor, KindWeapon, KindSpell}
}
