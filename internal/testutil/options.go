package testutil

// itemData holds all fields for a generated item document.
type itemData struct {
	id            string
	name          string
	formatVersion int
	category      string
	acFormula     string
	dexCap        *int
	properties    map[string]bool
	extra         map[string]any
}

func defaultArmor(id string) itemData {
	dexCap := 2
	return itemData{
		id:        id,
		name:      id, // Default name is the id
		category:  "light",
		acFormula: "11 + dex",
		dexCap:    &dexCap,
	}
}

func defaultWeapon(id string) itemData {
	return itemData{
		id:       id,
		name:     id,
		category: "simple",
	}
}

func (i itemData) fields() map[string]any {
	doc := map[string]any{
		"id":       i.id,
		"name":     i.name,
		"category": i.category,
	}
	if i.formatVersion != 0 {
		doc["format_version"] = i.formatVersion
	}
	if i.acFormula != "" {
		ac := map[string]any{"base_formula": i.acFormula}
		if i.dexCap != nil {
			ac["dex_cap"] = *i.dexCap
		}
		doc["ac"] = ac
	}
	if len(i.properties) > 0 {
		props := make(map[string]any, len(i.properties))
		for name, on := range i.properties {
			props[name] = on
		}
		doc["properties"] = props
	}
	for k, v := range i.extra {
		doc[k] = v
	}
	return doc
}

// ItemOption configures a generated item document.
type ItemOption func(*itemData)

// Name sets the display name.
func Name(name string) ItemOption {
	return func(i *itemData) { i.name = name }
}

// Category sets the item category.
func Category(category string) ItemOption {
	return func(i *itemData) { i.category = category }
}

// AC sets the armor class block.
func AC(formula string, dexCap int) ItemOption {
	return func(i *itemData) {
		i.acFormula = formula
		i.dexCap = &dexCap
	}
}

// NoAC drops the armor class block entirely.
func NoAC() ItemOption {
	return func(i *itemData) {
		i.acFormula = ""
		i.dexCap = nil
	}
}

// Property sets one property flag.
func Property(name string, on bool) ItemOption {
	return func(i *itemData) {
		if i.properties == nil {
			i.properties = make(map[string]bool)
		}
		i.properties[name] = on
	}
}

// FormatVersion sets the format_version field.
func FormatVersion(v int) ItemOption {
	return func(i *itemData) { i.formatVersion = v }
}

// Field sets an arbitrary raw field on the item document.
func Field(key string, value any) ItemOption {
	return func(i *itemData) {
		if i.extra == nil {
			i.extra = make(map[string]any)
		}
		i.extra[key] = value
	}
}

// spellData holds all fields for a generated spell document.
type spellData struct {
	id        string
	name      string
	fieldsMap map[string]any
}

func defaultSpell(id string) spellData {
	return spellData{
		id:   id,
		name: id,
		fieldsMap: map[string]any{
			"shape":     "circle",
			"radius_ft": 20,
		},
	}
}

func (s spellData) fields() map[string]any {
	doc := map[string]any{
		"id":   s.id,
		"name": s.name,
	}
	for k, v := range s.fieldsMap {
		doc[k] = v
	}
	return doc
}

// SpellOption configures a generated spell document.
type SpellOption func(*spellData)

// SpellName sets the spell's display name.
func SpellName(name string) SpellOption {
	return func(s *spellData) { s.name = name }
}

// Circle sets circle geometry, replacing the default.
func Circle(radiusFt float64) SpellOption {
	return func(s *spellData) {
		s.clearGeometry()
		s.fieldsMap["shape"] = "circle"
		s.fieldsMap["radius_ft"] = radiusFt
	}
}

// Square sets square geometry, replacing the default.
func Square(sideFt float64) SpellOption {
	return func(s *spellData) {
		s.clearGeometry()
		s.fieldsMap["shape"] = "square"
		s.fieldsMap["side_ft"] = sideFt
	}
}

// Line sets line geometry, replacing the default.
func Line(lengthFt, widthFt float64) SpellOption {
	return func(s *spellData) {
		s.clearGeometry()
		s.fieldsMap["shape"] = "line"
		s.fieldsMap["length_ft"] = lengthFt
		s.fieldsMap["width_ft"] = widthFt
	}
}

func (s *spellData) clearGeometry() {
	delete(s.fieldsMap, "radius_ft")
	delete(s.fieldsMap, "side_ft")
	delete(s.fieldsMap, "length_ft")
	delete(s.fieldsMap, "width_ft")
}

// Damage sets the damage_types list.
func Damage(types ...string) SpellOption {
	return func(s *spellData) { s.fieldsMap["damage_types"] = types }
}

// SaveThrow sets the save block.
func SaveThrow(saveType string, dc float64) SpellOption {
	return func(s *spellData) {
		s.fieldsMap["save"] = map[string]any{"type": saveType, "dc": dc}
	}
}

// Dice sets the roll expression.
func Dice(expr string) SpellOption {
	return func(s *spellData) { s.fieldsMap["dice"] = expr }
}

// Color sets the template color.
func Color(hex string) SpellOption {
	return func(s *spellData) { s.fieldsMap["color"] = hex }
}

// Duration sets duration_turns.
func Duration(turns int) SpellOption {
	return func(s *spellData) { s.fieldsMap["duration_turns"] = turns }
}

// OverTime sets the over_time flag.
func OverTime(on bool) SpellOption {
	return func(s *spellData) { s.fieldsMap["over_time"] = on }
}

// SpellField sets an arbitrary raw field on the spell document.
func SpellField(key string, value any) SpellOption {
	return func(s *spellData) { s.fieldsMap[key] = value }
}
