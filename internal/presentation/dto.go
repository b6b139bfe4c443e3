package presentation

import (
	"fmt"
	"sort"
	"strings"

	application "github.com/zjrosen/grimoire/internal/catalog/application"
	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
)

// ItemDTO represents an armor or weapon entry for presentation
type ItemDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Kind          string            `json:"kind"`
	Category      string            `json:"category"`
	FormatVersion int               `json:"format_version"`
	ArmorClass    *ArmorClassDTO    `json:"armor_class,omitempty"`
	Properties    map[string]bool   `json:"properties,omitempty"`
	Source        *ProvenanceDTO    `json:"source,omitempty"`
}

// ArmorClassDTO carries armor class details.
type ArmorClassDTO struct {
	BaseFormula string `json:"base_formula"`
	DexCap      int    `json:"dex_cap"`
}

// SpellDTO represents a spell entry for presentation
type SpellDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Kind          string         `json:"kind"`
	FormatVersion int            `json:"format_version"`
	Shape         string         `json:"shape"`
	RadiusFt      float64        `json:"radius_ft,omitempty"`
	SideFt        float64        `json:"side_ft,omitempty"`
	LengthFt      float64        `json:"length_ft,omitempty"`
	WidthFt       float64        `json:"width_ft,omitempty"`
	DamageTypes   []string       `json:"damage_types,omitempty"`
	Save          *SaveDTO       `json:"save,omitempty"`
	Dice          string         `json:"dice,omitempty"`
	Color         string         `json:"color,omitempty"`
	DurationTurns int            `json:"duration_turns"`
	OverTime      bool           `json:"over_time"`
	MovePerTurnFt float64        `json:"move_per_turn_ft,omitempty"`
	TriggerOn     string         `json:"trigger_on,omitempty"`
	Persistent    bool           `json:"persistent"`
	PinnedDefault bool           `json:"pinned_default"`
	Source        *ProvenanceDTO `json:"source,omitempty"`
}

// SaveDTO carries saving throw details.
type SaveDTO struct {
	Type string   `json:"type"`
	DC   *float64 `json:"dc,omitempty"`
}

// ProvenanceDTO records where an entry was loaded from.
type ProvenanceDTO struct {
	Path   string `json:"path"`
	Index  int    `json:"index"`
	Layout string `json:"layout"`
}

// WarningDTO represents a non-fatal load warning.
type WarningDTO struct {
	Code string `json:"code"`
	Path string `json:"path"`
	Kind string `json:"kind,omitempty"`
	ID   string `json:"id,omitempty"`
	Msg  string `json:"msg"`
}

// FieldErrorDTO names a single invalid field.
type FieldErrorDTO struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationErrorDTO represents a rejected record with its field errors.
type ValidationErrorDTO struct {
	Path   string          `json:"path"`
	Index  int             `json:"index"`
	Kind   string          `json:"kind"`
	ID     string          `json:"id,omitempty"`
	Fields []FieldErrorDTO `json:"fields"`
}

// ReportDTO summarizes a catalog build.
type ReportDTO struct {
	BuildID    string               `json:"build_id"`
	Files      int                  `json:"files"`
	Records    int                  `json:"records"`
	Loaded     int                  `json:"loaded"`
	DurationMs float64              `json:"duration_ms"`
	Warnings   []WarningDTO         `json:"warnings,omitempty"`
	Errors     []ValidationErrorDTO `json:"errors,omitempty"`
}

// ChangeDTO represents a single catalog diff entry.
type ChangeDTO struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Diff string `json:"diff,omitempty"`
}

// FromItem converts a domain item to a DTO.
func FromItem(item *catalog.Item) ItemDTO {
	dto := ItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		Kind:          string(item.Kind),
		Category:      item.Category,
		FormatVersion: item.FormatVersion,
		Properties:    item.Properties,
	}
	if item.AC != nil {
		dto.ArmorClass = &ArmorClassDTO{
			BaseFormula: item.AC.BaseFormula,
			DexCap:      item.AC.DexCap,
		}
	}
	return dto
}

// FromSpell converts a domain spell to a DTO.
func FromSpell(spell *catalog.Spell) SpellDTO {
	dto := SpellDTO{
		ID:            spell.ID,
		Name:          spell.Name,
		Kind:          string(catalog.KindSpell),
		FormatVersion: spell.FormatVersion,
		Shape:         string(spell.Shape),
		RadiusFt:      spell.RadiusFt,
		SideFt:        spell.SideFt,
		LengthFt:      spell.LengthFt,
		WidthFt:       spell.WidthFt,
		DamageTypes:   spell.DamageTypes,
		Dice:          spell.Dice,
		Color:         spell.Color,
		DurationTurns: spell.DurationTurns,
		OverTime:      spell.OverTime,
		MovePerTurnFt: spell.MovePerTurnFt,
		TriggerOn:     string(spell.TriggerOn),
		Persistent:    spell.Persistent,
		PinnedDefault: spell.PinnedDefault,
	}
	if spell.Save != nil {
		dto.Save = &SaveDTO{Type: spell.Save.Type, DC: spell.Save.DC}
	}
	return dto
}

// FromEntity converts any catalog entity to its DTO form.
func FromEntity(e catalog.Entity) any {
	switch v := e.(type) {
	case *catalog.Item:
		return FromItem(v)
	case *catalog.Spell:
		return FromSpell(v)
	default:
		return nil
	}
}

// FromEntityWithProvenance attaches source details to the entity DTO.
func FromEntityWithProvenance(e catalog.Entity, prov catalog.Provenance) any {
	src := &ProvenanceDTO{
		Path:   prov.Path,
		Index:  prov.Index,
		Layout: prov.Layout.String(),
	}
	switch v := e.(type) {
	case *catalog.Item:
		dto := FromItem(v)
		dto.Source = src
		return dto
	case *catalog.Spell:
		dto := FromSpell(v)
		dto.Source = src
		return dto
	default:
		return nil
	}
}

// FromEntities converts a slice of entities to DTOs.
func FromEntities(entities []catalog.Entity) []any {
	dtos := make([]any, len(entities))
	for i, e := range entities {
		dtos[i] = FromEntity(e)
	}
	return dtos
}

// FromWarning converts a domain warning to a DTO.
func FromWarning(w catalog.Warning) WarningDTO {
	return WarningDTO{
		Code: string(w.Code),
		Path: w.Path,
		Kind: string(w.Kind),
		ID:   w.ID,
		Msg:  w.Msg,
	}
}

// FromValidationError converts a domain validation error to a DTO.
func FromValidationError(ve *catalog.ValidationError) ValidationErrorDTO {
	fields := make([]FieldErrorDTO, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = FieldErrorDTO{Field: f.Field, Msg: f.Msg}
	}
	return ValidationErrorDTO{
		Path:   ve.Provenance.Path,
		Index:  ve.Provenance.Index,
		Kind:   string(ve.Kind),
		ID:     ve.ID,
		Fields: fields,
	}
}

// FromReport converts a build report to a DTO.
func FromReport(rep *application.Report) ReportDTO {
	dto := ReportDTO{
		BuildID:    rep.BuildID,
		Files:      rep.Files,
		Records:    rep.Records,
		Loaded:     rep.Loaded,
		DurationMs: float64(rep.Duration.Microseconds()) / 1000.0,
	}
	for _, w := range rep.Warnings {
		dto.Warnings = append(dto.Warnings, FromWarning(w))
	}
	for _, ve := range rep.Errors {
		dto.Errors = append(dto.Errors, FromValidationError(ve))
	}
	return dto
}

// FromChanges converts catalog diff entries to DTOs.
func FromChanges(changes []application.Change) []ChangeDTO {
	dtos := make([]ChangeDTO, len(changes))
	for i, c := range changes {
		dtos[i] = ChangeDTO{
			Kind: string(c.Kind),
			ID:   c.ID,
			Type: c.Type.String(),
			Diff: c.Diff,
		}
	}
	return dtos
}

// entitySummary builds the one-line description shown in table output.
func entitySummary(e catalog.Entity) string {
	switch v := e.(type) {
	case *catalog.Item:
		var parts []string
		if v.Category != "" {
			parts = append(parts, v.Category)
		}
		if v.AC != nil {
			parts = append(parts, fmt.Sprintf("ac %s (dex cap %d)", v.AC.BaseFormula, v.AC.DexCap))
		}
		if len(v.Properties) > 0 {
			names := make([]string, 0, len(v.Properties))
			for name, on := range v.Properties {
				if on {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			if len(names) > 0 {
				parts = append(parts, strings.Join(names, ", "))
			}
		}
		return strings.Join(parts, " | ")
	case *catalog.Spell:
		parts := []string{string(v.Shape)}
		if v.Dice != "" {
			parts = append(parts, v.Dice)
		}
		if len(v.DamageTypes) > 0 {
			parts = append(parts, strings.Join(v.DamageTypes, "/"))
		}
		if v.DurationTurns > 0 {
			parts = append(parts, fmt.Sprintf("%d turns", v.DurationTurns))
		}
		return strings.Join(parts, " | ")
	default:
		return ""
	}
}
