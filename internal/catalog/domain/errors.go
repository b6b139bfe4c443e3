package catalog

import (
	"fmt"
	"strings"
)

// WarningCode classifies recoverable load warnings.
type WarningCode string

const (
	// WarnUnrecognized marks a document that matched no known layout.
	WarnUnrecognized WarningCode = "unrecognized_document"
	// WarnDuplicateID marks a record superseded by the duplicate-id rule.
	WarnDuplicateID WarningCode = "duplicate_id"
	// WarnParseFailure marks a structurally unusable document that was skipped.
	WarnParseFailure WarningCode = "parse_failure"
)

// Warning is a recoverable problem encountered during a catalog build.
// Warnings never abort the build.
type Warning struct {
	Code WarningCode
	Path string
	Kind Kind
	ID   string
	Msg  string
}

func (w Warning) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", w.Code, w.Path)
	if w.ID != "" {
		fmt.Fprintf(&b, " (%s %s)", w.Kind, w.ID)
	}
	if w.Msg != "" {
		fmt.Fprintf(&b, ": %s", w.Msg)
	}
	return b.String()
}

// ParseError reports a document (or catalog entry) that is structurally
// unusable. The document is skipped and the build continues.
type ParseError struct {
	Path  string
	Index int // entry index within a catalog sequence, -1 otherwise
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parse %s entry %d: %s", e.Path, e.Index, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Msg)
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string
	Msg   string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ValidationError rejects one record. It always carries at least one
// field error; the record is excluded from the catalog in full.
type ValidationError struct {
	Provenance Provenance
	Kind       Kind
	ID         string // best-effort; may be empty when id itself is invalid
	Fields     []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	loc := e.Provenance.Path
	if e.Provenance.Index >= 0 {
		loc = fmt.Sprintf("%s entry %d", loc, e.Provenance.Index)
	}
	return fmt.Sprintf("invalid %s record at %s: %s", e.Kind, loc, strings.Join(parts, "; "))
}
