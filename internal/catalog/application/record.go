package catalog

import (
	"fmt"

	"github.com/zjrosen/grimoire/internal/catalog/domain"
)

// RawRecord is one entity record extracted from a source file, not yet
// validated. Fields hold the document's mappings as parsed, with no
// required shape until the validator runs.
type RawRecord struct {
	Kind       catalog.Kind
	Fields     map[string]any
	Provenance catalog.Provenance
}

// Records extracts zero or more raw records from a classified source
// file. Catalog layout yields one record per sequence entry, tagged with
// its index; per-item layout yields exactly one record, unwrapping a
// singular wrapper key if present. Property-definition and unrecognized
// files yield nothing. A ParseError means the document is structurally
// unusable and must be skipped as a whole.
func Records(file SourceFile) ([]RawRecord, *catalog.ParseError) {
	switch file.Class {
	case ClassCatalog:
		return catalogRecords(file)
	case ClassPerItem:
		rec, err := perItemRecord(file)
		if err != nil {
			return nil, err
		}
		return []RawRecord{rec}, nil
	default:
		return nil, nil
	}
}

func catalogRecords(file SourceFile) ([]RawRecord, *catalog.ParseError) {
	seq, _ := file.Doc[file.Kind.Plural()].([]any)

	records := make([]RawRecord, 0, len(seq))
	for i, entry := range seq {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, &catalog.ParseError{
				Path:  file.Path,
				Index: i,
				Msg:   fmt.Sprintf("catalog entry is %T, expected a mapping", entry),
			}
		}
		records = append(records, RawRecord{
			Kind:   file.Kind,
			Fields: fields,
			Provenance: catalog.Provenance{
				Path:   file.Path,
				Index:  i,
				Layout: catalog.LayoutCatalog,
			},
		})
	}
	return records, nil
}

func perItemRecord(file SourceFile) (RawRecord, *catalog.ParseError) {
	fields := file.Doc

	// Unwrap a singular wrapper when present: the kind-named key
	// ("spell:", "armor:", ...) or the generic "item:" key.
	for _, key := range []string{string(file.Kind), itemWrapperKey} {
		wrapped, ok := file.Doc[key]
		if !ok {
			continue
		}
		m, isMap := wrapped.(map[string]any)
		if !isMap {
			return RawRecord{}, &catalog.ParseError{
				Path:  file.Path,
				Index: -1,
				Msg:   fmt.Sprintf("wrapper key %q holds %T, expected a mapping", key, wrapped),
			}
		}
		fields = m
		break
	}

	if _, ok := fields["id"]; !ok {
		return RawRecord{}, &catalog.ParseError{
			Path:  file.Path,
			Index: -1,
			Msg:   "per-item document has neither a wrapper key nor a top-level id field",
		}
	}

	return RawRecord{
		Kind:   file.Kind,
		Fields: fields,
		Provenance: catalog.Provenance{
			Path:   file.Path,
			Index:  -1,
			Layout: catalog.LayoutPerItem,
		},
	}, nil
}
