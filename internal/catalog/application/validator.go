package catalog

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/zjrosen/grimoire/internal/catalog/domain"
)

var (
	// dicePattern matches <n>d<die> with die in the allowed set, e.g. "8d6".
	dicePattern = regexp.MustCompile(`^[1-9][0-9]*d(4|6|8|10|12)$`)
	// colorPattern matches hex colors of the form #RRGGBB.
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Validate checks a raw record against the schema for its kind and
// returns the validated entity, or a ValidationError carrying every
// field-level failure. There is no partial success: a record either
// validates in full or is rejected in full. Validation is pure: it
// performs no I/O and consults no other records.
func Validate(rec RawRecord) (catalog.Entity, *catalog.ValidationError) {
	r := &fieldReader{fields: rec.Fields}

	var entity catalog.Entity
	switch rec.Kind {
	case catalog.KindArmor, catalog.KindWeapon:
		entity = validateItem(r, rec.Kind)
	case catalog.KindSpell:
		entity = validateSpell(r)
	default:
		r.addError("kind", fmt.Sprintf("%q records cannot enter the catalog", rec.Kind))
	}

	if len(r.errs) > 0 {
		id, _ := rec.Fields["id"].(string)
		return nil, &catalog.ValidationError{
			Provenance: rec.Provenance,
			Kind:       rec.Kind,
			ID:         id,
			Fields:     r.errs,
		}
	}
	return entity, nil
}

func validateItem(r *fieldReader, kind catalog.Kind) *catalog.Item {
	item := &catalog.Item{
		Kind:          kind,
		ID:            r.requiredString("id"),
		Name:          r.requiredString("name"),
		FormatVersion: r.formatVersion(),
	}

	// Category and ac are armor schema. Weapons carry only the common
	// fields; anything else on a weapon record is ignored like any other
	// unknown field.
	if kind == catalog.KindArmor {
		item.Category = r.requiredString("category")
		item.AC = r.armorClass()
	} else if category, ok := r.optionalString("category"); ok {
		item.Category = category
	}

	item.Properties = r.properties()
	return item
}

func validateSpell(r *fieldReader) *catalog.Spell {
	spell := &catalog.Spell{
		ID:            r.requiredString("id"),
		Name:          r.requiredString("name"),
		FormatVersion: r.formatVersion(),
	}

	shape := catalog.Shape(r.requiredString("shape"))
	if shape != "" && !shape.IsValid() {
		r.addError("shape", fmt.Sprintf("%q is not one of circle, square, line", shape))
	} else {
		spell.Shape = shape
	}
	r.geometry(spell)

	spell.DamageTypes = r.stringSet("damage_types")
	spell.Save = r.save()

	if dice, ok := r.optionalString("dice"); ok {
		if !dicePattern.MatchString(dice) {
			r.addError("dice", fmt.Sprintf("%q does not match <n>d<die> with die in 4, 6, 8, 10, 12", dice))
		} else {
			spell.Dice = dice
		}
	}

	if color, ok := r.optionalString("color"); ok {
		if !colorPattern.MatchString(color) {
			r.addError("color", fmt.Sprintf("%q is not a #RRGGBB hex color", color))
		} else {
			spell.Color = color
		}
	}

	if turns, ok := r.optionalInt("duration_turns"); ok {
		if turns < 0 {
			r.addError("duration_turns", "must be a non-negative integer")
		} else {
			spell.DurationTurns = turns
		}
	}

	overTime, hasOverTime := r.optionalBool("over_time")
	spell.OverTime = hasOverTime && overTime

	if move, ok := r.optionalNumber("move_per_turn_ft"); ok {
		if move < 0 {
			r.addError("move_per_turn_ft", "must be a non-negative number")
		} else {
			spell.MovePerTurnFt = move
		}
	}

	if trigger, ok := r.optionalString("trigger_on_start_or_enter"); ok {
		t := catalog.Trigger(trigger)
		if !t.IsValid() {
			r.addError("trigger_on_start_or_enter", fmt.Sprintf("%q is not one of start, enter, start_or_enter", trigger))
		} else {
			spell.TriggerOn = t
		}
	}

	// An over-time spell keeps ticking until dispelled unless told otherwise.
	if persistent, ok := r.optionalBool("persistent"); ok {
		spell.Persistent = persistent
	} else {
		spell.Persistent = spell.OverTime
	}

	if pinned, ok := r.optionalBool("pinned_default"); ok {
		spell.PinnedDefault = pinned
	}

	return spell
}

// geometryFields maps each shape to its required geometry fields.
var geometryFields = map[catalog.Shape][]string{
	catalog.ShapeCircle: {"radius_ft"},
	catalog.ShapeSquare: {"side_ft"},
	catalog.ShapeLine:   {"length_ft", "width_ft"},
}

// geometry checks that exactly the declared shape's geometry fields are
// present. A field belonging to another shape is a reported mismatch,
// never silently dropped.
func (r *fieldReader) geometry(spell *catalog.Spell) {
	if !spell.Shape.IsValid() {
		return
	}

	required := geometryFields[spell.Shape]
	allowed := make(map[string]bool, len(required))
	for _, f := range required {
		allowed[f] = true
	}

	for _, f := range required {
		v, ok := r.optionalNumber(f)
		if !ok {
			if !r.has(f) {
				r.addError(f, fmt.Sprintf("required for shape %s", spell.Shape))
			}
			continue
		}
		if v <= 0 {
			r.addError(f, "must be a positive number")
			continue
		}
		switch f {
		case "radius_ft":
			spell.RadiusFt = v
		case "side_ft":
			spell.SideFt = v
		case "length_ft":
			spell.LengthFt = v
		case "width_ft":
			spell.WidthFt = v
		}
	}

	for _, fields := range geometryFields {
		for _, f := range fields {
			if !allowed[f] && r.has(f) {
				r.addError(f, fmt.Sprintf("does not belong to shape %s", spell.Shape))
			}
		}
	}
}

// fieldReader accumulates field-level errors while pulling typed values
// out of a raw record.
type fieldReader struct {
	fields map[string]any
	errs   []catalog.FieldError
}

func (r *fieldReader) addError(field, msg string) {
	r.errs = append(r.errs, catalog.FieldError{Field: field, Msg: msg})
}

func (r *fieldReader) has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

func (r *fieldReader) requiredString(field string) string {
	v, ok := r.fields[field]
	if !ok {
		r.addError(field, "required field is missing")
		return ""
	}
	s, ok := v.(string)
	if !ok || s == "" {
		r.addError(field, "must be a non-empty string")
		return ""
	}
	return s
}

func (r *fieldReader) optionalString(field string) (string, bool) {
	v, ok := r.fields[field]
	if !ok {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		r.addError(field, "must be a string")
		return "", false
	}
	return s, true
}

func (r *fieldReader) optionalBool(field string) (bool, bool) {
	v, ok := r.fields[field]
	if !ok {
		return false, false
	}
	b, isBool := v.(bool)
	if !isBool {
		r.addError(field, "must be a boolean")
		return false, false
	}
	return b, true
}

func (r *fieldReader) optionalInt(field string) (int, bool) {
	v, ok := r.fields[field]
	if !ok {
		return 0, false
	}
	n, isInt := asInt(v)
	if !isInt {
		r.addError(field, "must be an integer")
		return 0, false
	}
	return n, true
}

func (r *fieldReader) optionalNumber(field string) (float64, bool) {
	v, ok := r.fields[field]
	if !ok {
		return 0, false
	}
	n, isNum := asNumber(v)
	if !isNum {
		r.addError(field, "must be a number")
		return 0, false
	}
	return n, true
}

// formatVersion reads format_version, defaulting to 1 when absent.
func (r *fieldReader) formatVersion() int {
	v, ok := r.optionalInt("format_version")
	if !ok {
		return 1
	}
	return v
}

// armorClass reads the required ac object for armor records.
func (r *fieldReader) armorClass() *catalog.ArmorClass {
	v, ok := r.fields["ac"]
	if !ok {
		r.addError("ac", "required field is missing")
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		r.addError("ac", "must be a mapping with base_formula and dex_cap")
		return nil
	}

	nested := &fieldReader{fields: m}
	ac := &catalog.ArmorClass{
		BaseFormula: nested.requiredString("base_formula"),
	}
	if dexCap, ok := nested.optionalInt("dex_cap"); ok {
		if dexCap < 0 {
			nested.addError("dex_cap", "must be a non-negative integer")
		} else {
			ac.DexCap = dexCap
		}
	} else if !nested.has("dex_cap") {
		nested.addError("dex_cap", "required field is missing")
	}

	for _, fe := range nested.errs {
		r.addError("ac."+fe.Field, fe.Msg)
	}
	if len(nested.errs) > 0 {
		return nil
	}
	return ac
}

// properties reads the optional flag-name to boolean mapping.
func (r *fieldReader) properties() map[string]bool {
	v, ok := r.fields["properties"]
	if !ok {
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		r.addError("properties", "must be a mapping of flag names to booleans")
		return nil
	}

	props := make(map[string]bool, len(m))
	for flag, raw := range m {
		b, isBool := raw.(bool)
		if !isBool {
			r.addError("properties."+flag, "must be a boolean")
			continue
		}
		props[flag] = b
	}
	return props
}

// stringSet reads an optional sequence of strings into a sorted,
// deduplicated slice.
func (r *fieldReader) stringSet(field string) []string {
	v, ok := r.fields[field]
	if !ok {
		return nil
	}
	seq, isSeq := v.([]any)
	if !isSeq {
		r.addError(field, "must be a sequence of strings")
		return nil
	}

	seen := make(map[string]bool, len(seq))
	for i, entry := range seq {
		s, isStr := entry.(string)
		if !isStr {
			r.addError(fmt.Sprintf("%s[%d]", field, i), "must be a string")
			continue
		}
		seen[s] = true
	}

	result := make([]string, 0, len(seen))
	for s := range seen {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// save reads the optional saving-throw object.
func (r *fieldReader) save() *catalog.Save {
	v, ok := r.fields["save"]
	if !ok {
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		r.addError("save", "must be a mapping with type and optional dc")
		return nil
	}

	nested := &fieldReader{fields: m}
	save := &catalog.Save{Type: nested.requiredString("type")}
	if dc, ok := nested.optionalNumber("dc"); ok {
		if dc < 0 {
			nested.addError("dc", "must be a non-negative number")
		} else {
			save.DC = &dc
		}
	}

	for _, fe := range nested.errs {
		r.addError("save."+fe.Field, fe.Msg)
	}
	if len(nested.errs) > 0 {
		return nil
	}
	return save
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
