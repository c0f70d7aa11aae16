// Package memory keeps the content document in process memory.
// It backs tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"

	"github.com/google/uuid"
)

// Store is a mutex-guarded DocumentStore that hands out deep copies
type Store struct {
	mu       sync.Mutex
	doc      *content.Document
	revision repositories.Revision

	// FailSave, when set, makes every Save fail with a persistence error
	FailSave error
}

// NewStore creates an empty store. A non-nil doc is stored as the initial content.
func NewStore(doc *content.Document) *Store {
	s := &Store{}
	if doc != nil {
		s.doc = contenttree.CloneDocument(doc)
		s.revision = repositories.Revision(uuid.NewString())
	}
	return s
}

// Load returns a copy of the stored document
func (s *Store) Load(ctx context.Context) (*content.Document, repositories.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return content.NewDocument(), "", nil
	}
	return contenttree.CloneDocument(s.doc), s.revision, nil
}

// Save replaces the stored document with a copy of doc
func (s *Store) Save(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (repositories.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return "", &domain.PersistenceError{Op: "save", Err: s.FailSave}
	}
	if ifMatch != "" && ifMatch != s.revision {
		return "", domain.ErrPreconditionFailed
	}

	s.doc = contenttree.CloneDocument(doc)
	s.revision = repositories.Revision(uuid.NewString())
	return s.revision, nil
}

// Close is a no-op
func (s *Store) Close() error { return nil }
