package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	catalog "github.com/zjrosen/grimoire/internal/catalog/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB"))
	idStyle      = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5D873"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes any DTO as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatEntityTable writes entities as an aligned, styled table.
func (f *Formatter) FormatEntityTable(entities []catalog.Entity) error {
	if len(entities) == 0 {
		_, err := fmt.Fprintln(f.writer, "no entries")
		return err
	}

	idWidth, nameWidth := len("ID"), len("NAME")
	for _, e := range entities {
		if l := len(e.EntityID()); l > idWidth {
			idWidth = l
		}
		if l := len(e.EntityName()); l > nameWidth {
			nameWidth = l
		}
	}

	header := fmt.Sprintf("%-8s  %-*s  %-*s  %s", "KIND", idWidth, "ID", nameWidth, "NAME", "DETAILS")
	if _, err := fmt.Fprintln(f.writer, headerStyle.Render(header)); err != nil {
		return err
	}

	for _, e := range entities {
		row := fmt.Sprintf("%s  %s  %-*s  %s",
			kindStyle.Render(fmt.Sprintf("%-8s", e.EntityKind())),
			idStyle.Render(fmt.Sprintf("%-*s", idWidth, e.EntityID())),
			nameWidth, e.EntityName(),
			entitySummary(e),
		)
		if _, err := fmt.Fprintln(f.writer, row); err != nil {
			return err
		}
	}
	return nil
}

// FormatReport writes a human-readable build summary followed by any
// warnings and validation errors.
func (f *Formatter) FormatReport(rep ReportDTO) error {
	status := okStyle.Render("ok")
	if len(rep.Errors) > 0 {
		status = errorStyle.Render(fmt.Sprintf("%d invalid", len(rep.Errors)))
	}

	summary := fmt.Sprintf("build %s: %d files, %d records, %d loaded, %s (%.1fms)",
		rep.BuildID, rep.Files, rep.Records, rep.Loaded, status, rep.DurationMs)
	if _, err := fmt.Fprintln(f.writer, summary); err != nil {
		return err
	}

	for _, w := range rep.Warnings {
		line := fmt.Sprintf("  %s %s: %s", warnStyle.Render("warn"), w.Path, w.Msg)
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}

	for _, ve := range rep.Errors {
		loc := ve.Path
		if ve.Index >= 0 {
			loc = fmt.Sprintf("%s[%d]", ve.Path, ve.Index)
		}
		head := fmt.Sprintf("  %s %s %s (%s)", errorStyle.Render("error"), loc, ve.ID, ve.Kind)
		if _, err := fmt.Fprintln(f.writer, head); err != nil {
			return err
		}
		for _, fe := range ve.Fields {
			line := fmt.Sprintf("    %s: %s", fe.Field, fe.Msg)
			if _, err := fmt.Fprintln(f.writer, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatChanges writes catalog diff entries, one block per change.
func (f *Formatter) FormatChanges(changes []ChangeDTO) error {
	if len(changes) == 0 {
		_, err := fmt.Fprintln(f.writer, "no changes")
		return err
	}

	for _, c := range changes {
		var label string
		switch c.Type {
		case "added":
			label = addedStyle.Render("+ " + c.ID)
		case "removed":
			label = removedStyle.Render("- " + c.ID)
		default:
			label = warnStyle.Render("~ " + c.ID)
		}
		if _, err := fmt.Fprintf(f.writer, "%s (%s)\n", label, c.Kind); err != nil {
			return err
		}
		if c.Type == "modified" && c.Diff != "" {
			if _, err := fmt.Fprintln(f.writer, c.Diff); err != nil {
				return err
			}
		}
	}
	return nil
}
