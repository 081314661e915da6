// Package docstore implements the document store on top of JSON files.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
)

// InstrumentationName is the OpenTelemetry tracer name used by the store.
const InstrumentationName = "go.trai.ch/zpkg/docstore"

var _ ports.DocumentStore = (*Store)(nil)

// Store implements ports.DocumentStore with one JSON file per document.
type Store struct {
	fs     FileSystem
	tracer trace.Tracer
}

// NewStore creates a new Store over the given filesystem.
func NewStore(fsys FileSystem) *Store {
	return &Store{
		fs:     fsys,
		tracer: otel.Tracer(InstrumentationName),
	}
}

// WithTracer replaces the tracer used to record store operations.
func (s *Store) WithTracer(tracer trace.Tracer) *Store {
	s.tracer = tracer
	return s
}

// LoadIfExists reads the document stored at path.
// Returns nil, nil if the file does not exist.
func (s *Store) LoadIfExists(path string) (domain.Document, error) {
	span := s.start("docstore.load", path)
	defer span.End()

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			span.SetAttributes(attribute.Bool("found", false))
			return nil, nil
		}
		return nil, fail(span, zerr.With(zerr.Wrap(err, domain.ErrDocumentRead.Error()), "path", path))
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fail(span, zerr.With(zerr.Wrap(err, domain.ErrDocumentParse.Error()), "path", path))
	}

	span.SetAttributes(attribute.Bool("found", doc != nil))
	return doc, nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(path string) bool {
	span := s.start("docstore.exists", path)
	defer span.End()

	_, err := s.fs.Stat(path)
	return err == nil
}

// Write stores doc at path as indented JSON with sorted keys.
func (s *Store) Write(path string, doc domain.Document) error {
	span := s.start("docstore.write", path)
	defer span.End()

	data, err := Marshal(doc)
	if err != nil {
		return fail(span, zerr.With(err, "path", path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, domain.DirPerm); err != nil {
			return fail(span, zerr.With(zerr.Wrap(err, domain.ErrDocumentWrite.Error()), "path", path))
		}
	}

	if err := s.fs.WriteFile(path, data, domain.FilePerm); err != nil {
		return fail(span, zerr.With(zerr.Wrap(err, domain.ErrDocumentWrite.Error()), "path", path))
	}

	return nil
}

// Marshal renders doc the way Write persists it.
func Marshal(doc domain.Document) ([]byte, error) {
	if doc == nil {
		doc = domain.Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDocumentMarshal.Error())
	}
	return append(data, '\n'), nil
}

func (s *Store) start(name, path string) trace.Span {
	_, span := s.tracer.Start(context.Background(), name,
		trace.WithAttributes(attribute.String("path", path)),
	)
	return span
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
