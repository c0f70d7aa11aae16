package content

import (
	"context"
	"log/slog"

	"coursetree/internal/contenttree"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/domain/services"
)

type documentService struct {
	documentAccess
}

// NewDocumentService creates a new document service
func NewDocumentService(store repositories.DocumentStore, logger *slog.Logger) services.DocumentService {
	return &documentService{documentAccess{store: store, logger: logger}}
}

// GetDocument returns the stored document
func (s *documentService) GetDocument(ctx context.Context) (*models.Document, repositories.Revision, error) {
	return s.load(ctx)
}

// ReplaceDocument validates the whole document and stores it in one write
func (s *documentService) ReplaceDocument(ctx context.Context, doc *models.Document, ifMatch repositories.Revision) (*models.Document, repositories.Revision, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, "", err
	}

	replacement := contenttree.CloneDocument(doc)
	replacement.Normalize()

	rev, err := s.save(ctx, replacement, ifMatch, "replace document")
	if err != nil {
		return replacement, "", err
	}

	nodes := 0
	for _, c := range replacement.Courses {
		nodes += contenttree.Count(c.Content)
	}
	s.logger.Info("content document replaced",
		"courses", len(replacement.Courses),
		"nodes", nodes,
	)
	return replacement, rev, nil
}
