// Package catalog (application) implements the content pipeline: source
// discovery, record extraction, schema validation, and the catalog build
// service that ties them together.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	stdpath "path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/grimoire/internal/cachemanager"
	"github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/log"
)

// propertyFilePrefix marks shared trait metadata files. They are never
// ingested as entities regardless of their content.
const propertyFilePrefix = "properties_"

// itemWrapperKey is the generic singular wrapper ("item:") accepted for
// files that do not name their kind; the directory or root hint decides.
const itemWrapperKey = "item"

// FileClass is the detected layout of a single source file.
type FileClass int

const (
	// ClassPerItem is a single-entity document, optionally wrapped under
	// a singular key such as "spell:".
	ClassPerItem FileClass = iota
	// ClassCatalog is a document with a pluralized sequence field
	// ("armors:", "weapons:", "spells:").
	ClassCatalog
	// ClassPropertyDefinition is shared trait metadata, skipped entirely.
	ClassPropertyDefinition
	// ClassUnrecognized matched no known shape and becomes a load warning.
	ClassUnrecognized
)

// String returns a human-readable representation of the FileClass.
func (c FileClass) String() string {
	switch c {
	case ClassPerItem:
		return "per-item"
	case ClassCatalog:
		return "catalog"
	case ClassPropertyDefinition:
		return "property-definition"
	case ClassUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Root is one directory tree of content files.
type Root struct {
	// FS is the root's filesystem. Paths inside it use forward slashes.
	FS fs.FS
	// Name prefixes provenance paths so records from different roots
	// stay distinguishable.
	Name string
	// Hint is the kind assumed for per-item files that declare no kind
	// themselves (e.g. KindSpell for the spells root). Empty means the
	// file path or wrapper key must decide.
	Hint catalog.Kind
}

// NewDirRoot creates a Root backed by the OS filesystem.
func NewDirRoot(dir string, hint catalog.Kind) Root {
	return Root{FS: os.DirFS(dir), Name: dir, Hint: hint}
}

// SourceFile is one classified document produced by a Loader walk.
type SourceFile struct {
	// Path is the file's provenance path (root name + slash path).
	Path string
	// Class is the detected layout.
	Class FileClass
	// Kind is the entity kind for per-item and catalog files. May be
	// empty for unrecognized documents.
	Kind catalog.Kind
	// Doc is the parsed document. Nil for property-definition files and
	// for files that failed to read or parse.
	Doc map[string]any
	// Err is the read or YAML parse failure, if any. Files with a
	// non-nil Err are reported as parse warnings and skipped.
	Err error
}

// Loader walks content roots and yields classified source files.
// Walking is read-only and restartable: walking twice over an unchanged
// filesystem yields the same sequence.
type Loader struct {
	roots []Root
	docs  *cachemanager.InMemoryCacheManager[string, map[string]any]
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDocumentCache reuses parsed documents for files whose size and
// mtime are unchanged since the last walk. Used by watch mode where most
// of the tree is untouched between rebuilds.
func WithDocumentCache(cache *cachemanager.InMemoryCacheManager[string, map[string]any]) LoaderOption {
	return func(l *Loader) {
		l.docs = cache
	}
}

// NewLoader creates a loader over the given roots. Roots are walked in
// argument order; files within a root in lexical order.
func NewLoader(roots []Root, opts ...LoaderOption) *Loader {
	l := &Loader{roots: roots}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Walk classifies every YAML file under every root and passes it to fn.
// Returning an error from fn aborts the walk. Walk itself fails only
// when a root cannot be traversed; unreadable or malformed files are
// delivered to fn with Err set, never aborting the batch.
func (l *Loader) Walk(fn func(SourceFile) error) error {
	for _, root := range l.roots {
		err := fs.WalkDir(root.FS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isYAML(path) {
				return nil
			}
			return fn(l.classifyFile(root, path))
		})
		if err != nil {
			return fmt.Errorf("walk root %s: %w", root.Name, err)
		}
	}
	return nil
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func (l *Loader) classifyFile(root Root, path string) SourceFile {
	provPath := stdpath.Join(root.Name, path)

	// Metadata files are excluded before any parsing happens, so even a
	// file full of entity-shaped mappings yields no records.
	if strings.HasPrefix(stdpath.Base(path), propertyFilePrefix) {
		log.Debug(log.CatLoader, "skipping property definition file", "path", provPath)
		return SourceFile{Path: provPath, Class: ClassPropertyDefinition, Kind: catalog.KindPropertyDefinition}
	}

	doc, err := l.parseDocument(root, path)
	if err != nil {
		return SourceFile{Path: provPath, Class: ClassUnrecognized, Err: err}
	}

	if kind, ok := catalogKind(doc); ok {
		return SourceFile{Path: provPath, Class: ClassCatalog, Kind: kind, Doc: doc}
	}

	if kind, ok := perItemKind(doc, path, root.Hint); ok {
		return SourceFile{Path: provPath, Class: ClassPerItem, Kind: kind, Doc: doc}
	}

	return SourceFile{Path: provPath, Class: ClassUnrecognized, Doc: doc}
}

// parseDocument reads and unmarshals one file, consulting the document
// cache when configured.
func (l *Loader) parseDocument(root Root, path string) (map[string]any, error) {
	cacheKey := ""
	if l.docs != nil {
		if info, err := fs.Stat(root.FS, path); err == nil {
			cacheKey = fmt.Sprintf("%s/%s@%d:%d", root.Name, path, info.ModTime().UnixNano(), info.Size())
			if doc, ok := l.docs.Get(cacheKey); ok {
				return doc, nil
			}
		}
	}

	content, err := fs.ReadFile(root.FS, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if l.docs != nil && cacheKey != "" {
		l.docs.Set(cacheKey, doc, cachemanager.DefaultExpiration)
	}
	return doc, nil
}

// catalogKind reports whether the document is catalog layout: a
// top-level pluralized field holding a sequence.
func catalogKind(doc map[string]any) (catalog.Kind, bool) {
	for _, kind := range catalog.CatalogKinds() {
		if v, ok := doc[kind.Plural()]; ok {
			if _, isSeq := v.([]any); isSeq || v == nil {
				return kind, true
			}
		}
	}
	return "", false
}

// perItemKind reports whether the document is per-item layout and which
// kind it holds. Detection order: kind-named wrapper key, then an
// id-shaped mapping (bare, or under the generic "item:" wrapper) whose
// kind comes from the file's directory or the root hint.
func perItemKind(doc map[string]any, path string, hint catalog.Kind) (catalog.Kind, bool) {
	for _, kind := range catalog.CatalogKinds() {
		if v, ok := doc[string(kind)]; ok {
			if _, isMap := v.(map[string]any); isMap {
				return kind, true
			}
		}
	}

	fields := doc
	if wrapped, ok := doc[itemWrapperKey].(map[string]any); ok {
		fields = wrapped
	}
	if _, ok := fields["id"]; !ok {
		return "", false
	}

	// Item roots group files into per-kind subdirectories (armor/,
	// weapons/); the directory name decides the kind.
	for _, seg := range strings.Split(stdpath.Dir(path), "/") {
		if kind, err := catalog.ParseKind(seg); err == nil {
			return kind, true
		}
	}

	if hint.Catalogable() {
		return hint, true
	}
	return "", false
}
