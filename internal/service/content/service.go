// Package content orchestrates content edits: load the document, apply one
// engine operation to a copy, save it back.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
)

// documentAccess is shared by the course, node and document services
type documentAccess struct {
	store  repositories.DocumentStore
	logger *slog.Logger
}

// load returns a private copy of the stored document
func (a *documentAccess) load(ctx context.Context) (*models.Document, repositories.Revision, error) {
	doc, rev, err := a.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = &domain.PersistenceError{Op: "load", Err: err}
		}
		a.logger.Error("content load failed", "error", err)
		return nil, "", err
	}
	return contenttree.CloneDocument(doc), rev, nil
}

// save writes the document and logs failures. A stale ifMatch is returned as is.
func (a *documentAccess) save(ctx context.Context, doc *models.Document, ifMatch repositories.Revision, op string) (repositories.Revision, error) {
	rev, err := a.store.Save(ctx, doc, ifMatch)
	if err == nil {
		return rev, nil
	}
	if errors.Is(err, domain.ErrPreconditionFailed) {
		a.logger.Info("content save rejected: stale revision", "op", op, "if_match", ifMatch)
		return "", err
	}
	if !errors.Is(err, domain.ErrPersistence) {
		err = &domain.PersistenceError{Op: "save", Err: err}
	}
	a.logger.Error("content save failed", "op", op, "error", err)
	return "", err
}

// course returns the course with the given id inside doc
func course(doc *models.Document, id string) (*models.Course, error) {
	c, ok := doc.FindCourse(id)
	if !ok {
		return nil, domain.NewNotFound("course", id)
	}
	return c, nil
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
