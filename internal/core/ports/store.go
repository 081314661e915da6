// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/zpkg/internal/core/domain"

// DocumentStore loads and persists structured JSON documents keyed by file path.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DocumentStore interface {
	// LoadIfExists returns the document stored at path.
	// Returns nil, nil if nothing is stored there.
	LoadIfExists(path string) (domain.Document, error)

	// Exists reports whether a document is stored at path.
	Exists(path string) bool

	// Write stores doc at path, replacing any previous content.
	Write(path string, doc domain.Document) error
}
