// Package seed loads initial content into an empty document store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
)

// Validator rejects documents that must not be stored
type Validator func(doc *content.Document) error

// LoadFile reads a document from a .json, .yaml or .yml file
func LoadFile(path string) (*content.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return content.DecodeYAML(data)
	default:
		return content.DecodeJSON(data)
	}
}

// IsEmpty reports whether a loaded store has never been written
func IsEmpty(doc *content.Document, rev repositories.Revision) bool {
	return rev == "" && len(doc.Courses) == 0
}

// EnsureSeeded writes the document at path into store when the store is empty.
// It returns true when a seed was written. An empty path is a no-op.
func EnsureSeeded(ctx context.Context, store repositories.DocumentStore, path string, validate Validator, logger *slog.Logger) (bool, error) {
	if path == "" {
		return false, nil
	}

	current, rev, err := store.Load(ctx)
	if err != nil {
		return false, err
	}
	if !IsEmpty(current, rev) {
		logger.Debug("store already has content, skipping seed", "courses", len(current.Courses))
		return false, nil
	}

	doc, err := LoadFile(path)
	if err != nil {
		return false, err
	}
	if validate != nil {
		if err := validate(doc); err != nil {
			return false, fmt.Errorf("seed file %s: %w", path, err)
		}
	}

	newRev, err := store.Save(ctx, doc, "")
	if err != nil {
		return false, err
	}

	logger.Info("content seeded",
		"path", path,
		"courses", len(doc.Courses),
		"revision", newRev,
	)
	return true, nil
}
