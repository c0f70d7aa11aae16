package repositories

import (
	"context"

	"coursetree/internal/domain/models/content"
)

// Revision identifies one stored version of the content document.
// Empty means "no revision": Load returns it when nothing is stored yet,
// and Save treats an empty ifMatch as an unconditional write.
type Revision string

// DocumentStore persists the whole content document as a single unit
type DocumentStore interface {
	// Load returns the stored document and its revision.
	// When nothing has been stored yet it returns an empty document and an empty revision.
	Load(ctx context.Context) (*content.Document, Revision, error)

	// Save writes the document. A non-empty ifMatch that differs from the stored
	// revision fails with domain.ErrPreconditionFailed and writes nothing.
	// Every other failure wraps domain.ErrPersistence.
	Save(ctx context.Context, doc *content.Document, ifMatch Revision) (Revision, error)

	// Close releases connections held by the store
	Close() error
}
