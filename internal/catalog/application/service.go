package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/grimoire/internal/cachemanager"
	"github.com/zjrosen/grimoire/internal/catalog/domain"
	"github.com/zjrosen/grimoire/internal/log"
	"github.com/zjrosen/grimoire/internal/pubsub"
)

// Report summarizes one catalog build: what was read, what was loaded,
// and everything that went wrong without aborting the batch.
type Report struct {
	// BuildID uniquely identifies this build in logs and traces.
	BuildID string
	// Files is the number of YAML files visited.
	Files int
	// Records is the number of raw records extracted.
	Records int
	// Loaded is the number of records that entered the catalog.
	Loaded int
	// Warnings are recoverable problems (unrecognized documents, skipped
	// parse failures, duplicate ids).
	Warnings []catalog.Warning
	// Errors are per-record validation rejections.
	Errors []*catalog.ValidationError
	// Duration is the wall time of the build.
	Duration time.Duration
}

// HasErrors returns true if any record failed validation.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// ReloadEvent is published after every successful rebuild.
type ReloadEvent struct {
	Catalog *catalog.Catalog
	Report  *Report
}

// Service builds catalogs from content roots and holds the current one.
// The held catalog is swapped atomically on reload, so readers always
// see a complete build and never need locking.
type Service struct {
	current atomic.Pointer[catalog.Catalog]
	report  atomic.Pointer[Report]
	docs    *cachemanager.InMemoryCacheManager[string, map[string]any]
	tracer  trace.Tracer
	broker  *pubsub.Broker[ReloadEvent]
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTracer records reload phases as spans on the given tracer.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithParsedDocumentCache caches parsed documents between reloads, keyed
// by path, size, and mtime. Worth it only for watch mode.
func WithParsedDocumentCache(ttl, cleanup time.Duration) ServiceOption {
	return func(s *Service) {
		s.docs = cachemanager.NewInMemoryCacheManager[string, map[string]any]("catalog-documents", ttl, cleanup)
	}
}

// NewService creates a catalog service. Until the first Reload, Current
// returns an empty catalog.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		tracer: noop.NewTracerProvider().Tracer("catalog"),
		broker: pubsub.NewBroker[ReloadEvent](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(catalog.NewCatalog())
	return s
}

// Current returns the most recently built catalog. Safe for concurrent
// use; the returned catalog is immutable.
func (s *Service) Current() *catalog.Catalog {
	return s.current.Load()
}

// LastReport returns the report of the most recent build, or nil before
// the first Reload.
func (s *Service) LastReport() *Report {
	return s.report.Load()
}

// Subscribe delivers a ReloadEvent after every rebuild until ctx is
// cancelled.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[ReloadEvent] {
	return s.broker.Subscribe(ctx)
}

// Close shuts down the reload event broker.
func (s *Service) Close() {
	s.broker.Close()
}

// Reload builds a fresh catalog from the given roots and swaps it in.
// The build is fail-soft: malformed documents and invalid records are
// collected into the report and never stop other records from loading.
// An error is returned only when a root itself cannot be walked; the
// previously held catalog stays current in that case.
func (s *Service) Reload(ctx context.Context, roots ...Root) (*catalog.Catalog, *Report, error) {
	report := &Report{BuildID: uuid.NewString()}
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "catalog.reload",
		trace.WithAttributes(
			attribute.String("build.id", report.BuildID),
			attribute.Int("roots", len(roots)),
		))
	defer span.End()

	log.Info(log.CatCatalog, "reloading catalog", "build", report.BuildID, "roots", len(roots))

	built := catalog.NewCatalog()
	loader := newServiceLoader(roots, s.docs)

	walkErr := loader.Walk(func(file SourceFile) error {
		s.ingest(ctx, built, file, report)
		return nil
	})
	if walkErr != nil {
		span.RecordError(walkErr)
		log.ErrorErr(log.CatCatalog, "catalog reload aborted", walkErr, "build", report.BuildID)
		return nil, nil, walkErr
	}

	report.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("files", report.Files),
		attribute.Int("records", report.Records),
		attribute.Int("loaded", report.Loaded),
		attribute.Int("warnings", len(report.Warnings)),
		attribute.Int("errors", len(report.Errors)),
	)

	s.current.Store(built)
	s.report.Store(report)
	s.broker.Publish(pubsub.CreatedEvent, ReloadEvent{Catalog: built, Report: report})

	log.Info(log.CatCatalog, "catalog reloaded",
		"build", report.BuildID,
		"entities", built.Len(),
		"warnings", len(report.Warnings),
		"errors", len(report.Errors),
		"duration", report.Duration)

	return built, report, nil
}

func newServiceLoader(roots []Root, docs *cachemanager.InMemoryCacheManager[string, map[string]any]) *Loader {
	if docs != nil {
		return NewLoader(roots, WithDocumentCache(docs))
	}
	return NewLoader(roots)
}

// ingest feeds one classified file through the parser and validator into
// the catalog under construction.
func (s *Service) ingest(ctx context.Context, built *catalog.Catalog, file SourceFile, report *Report) {
	_, span := s.tracer.Start(ctx, "catalog.ingest",
		trace.WithAttributes(attribute.String("file", file.Path)))
	defer span.End()

	report.Files++

	switch {
	case file.Class == ClassPropertyDefinition:
		return
	case file.Err != nil:
		report.Warnings = append(report.Warnings, catalog.Warning{
			Code: catalog.WarnParseFailure,
			Path: file.Path,
			Msg:  file.Err.Error(),
		})
		log.Warn(log.CatParse, "skipping unreadable document", "path", file.Path, "error", file.Err)
		return
	case file.Class == ClassUnrecognized:
		report.Warnings = append(report.Warnings, catalog.Warning{
			Code: catalog.WarnUnrecognized,
			Path: file.Path,
			Msg:  "document matches no known layout",
		})
		log.Warn(log.CatLoader, "unrecognized document", "path", file.Path)
		return
	}

	records, parseErr := Records(file)
	if parseErr != nil {
		report.Warnings = append(report.Warnings, catalog.Warning{
			Code: catalog.WarnParseFailure,
			Path: file.Path,
			Kind: file.Kind,
			Msg:  parseErr.Error(),
		})
		log.Warn(log.CatParse, "skipping unusable document", "path", file.Path, "error", parseErr)
		return
	}

	for _, rec := range records {
		report.Records++

		entity, invalid := Validate(rec)
		if invalid != nil {
			report.Errors = append(report.Errors, invalid)
			log.Warn(log.CatValidate, "record rejected",
				"path", rec.Provenance.Path, "kind", rec.Kind, "id", invalid.ID, "fields", len(invalid.Fields))
			continue
		}

		warn, err := built.Add(entity, rec.Provenance)
		if err != nil {
			// Add only fails on nil entities, which Validate never produces.
			log.ErrorErr(log.CatCatalog, "failed to add validated entity", err, "path", rec.Provenance.Path)
			continue
		}
		if warn != nil {
			report.Warnings = append(report.Warnings, *warn)
			log.Warn(log.CatCatalog, "duplicate id", "kind", warn.Kind, "id", warn.ID, "path", warn.Path)
			continue
		}
		report.Loaded++
	}
}
