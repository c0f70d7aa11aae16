// Package file stores the content document as a pretty-printed JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"

	"github.com/google/uuid"
)

// Store keeps the document at path and its revision in a sidecar file at path + ".rev".
// Writes go to a temp file in the same directory and are renamed into place.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewStore creates a file store, creating the parent directory if needed
func NewStore(path string, logger *slog.Logger) (repositories.DocumentStore, error) {
	if path == "" {
		return nil, errors.New("content file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create content directory: %w", err)
	}
	return &Store{path: path, logger: logger}, nil
}

func (s *Store) revisionPath() string {
	return s.path + ".rev"
}

// Load reads the document. A missing file is an empty document with no revision.
func (s *Store) Load(ctx context.Context) (*content.Document, repositories.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return content.NewDocument(), "", nil
	}
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}

	doc, err := content.DecodeJSON(data)
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: fmt.Errorf("%s: %w", s.path, err)}
	}

	rev, err := s.readRevision()
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}
	return doc, rev, nil
}

// Save writes the document atomically and rotates the revision
func (s *Store) Save(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (repositories.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ifMatch != "" {
		current, err := s.readRevision()
		if err != nil {
			return "", &domain.PersistenceError{Op: "save", Err: err}
		}
		if current != ifMatch {
			return "", domain.ErrPreconditionFailed
		}
	}

	data, err := content.EncodeJSON(doc)
	if err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}
	if err := writeAtomic(s.path, data); err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}

	rev := repositories.Revision(uuid.NewString())
	if err := writeAtomic(s.revisionPath(), []byte(rev)); err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}

	s.logger.Debug("content document written", "path", s.path, "bytes", len(data), "revision", rev)
	return rev, nil
}

// Close is a no-op
func (s *Store) Close() error { return nil }

// readRevision returns "" when the sidecar does not exist yet
func (s *Store) readRevision() (repositories.Revision, error) {
	data, err := os.ReadFile(s.revisionPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read revision: %w", err)
	}
	return repositories.Revision(strings.TrimSpace(string(data))), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
