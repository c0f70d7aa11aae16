package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// contentRowID is the primary key of the single row holding the document
const contentRowID = "content"

// DocumentStore keeps the whole content document in one JSONB row
type DocumentStore struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
	ownsPool  bool
}

// NewDocumentStore creates a postgres-backed document store.
// The pool is closed by Close only when ownsPool is true.
func NewDocumentStore(config *RepositoryConfig, ownsPool bool) *DocumentStore {
	return &DocumentStore{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: NewTransactionManager(config.Pool, config.Logger),
		logger:    config.Logger,
		ownsPool:  ownsPool,
	}
}

// EnsureSchema creates the document table if it does not exist
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			revision   TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, s.tables.ContentDocuments)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", s.tables.ContentDocuments, err)
	}
	s.logger.Info("content table ready", "table", s.tables.ContentDocuments)
	return nil
}

// Load reads the document row. No row means an empty document with no revision.
func (s *DocumentStore) Load(ctx context.Context) (*content.Document, repositories.Revision, error) {
	query := fmt.Sprintf(`SELECT body, revision FROM %s WHERE id = $1`, s.tables.ContentDocuments)

	var body []byte
	var rev string
	err := GetExecutor(ctx, s.pool).QueryRow(ctx, query, contentRowID).Scan(&body, &rev)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgUndefinedTableError(err) {
			return content.NewDocument(), "", nil
		}
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}

	doc, err := content.DecodeJSON(body)
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}
	return doc, repositories.Revision(rev), nil
}

// Save upserts the document row. With ifMatch set, the current row is locked
// and its revision compared before writing.
func (s *DocumentStore) Save(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (repositories.Revision, error) {
	body, err := content.EncodeJSON(doc)
	if err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}
	next := repositories.Revision(uuid.NewString())

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.pool)

		if ifMatch != "" {
			lock := fmt.Sprintf(`SELECT revision FROM %s WHERE id = $1 FOR UPDATE`, s.tables.ContentDocuments)
			var current string
			if err := exec.QueryRow(txCtx, lock, contentRowID).Scan(&current); err != nil {
				if IsPgNoRowsError(err) {
					return domain.ErrPreconditionFailed
				}
				return fmt.Errorf("lock content row: %w", err)
			}
			if repositories.Revision(current) != ifMatch {
				return domain.ErrPreconditionFailed
			}
		}

		upsert := fmt.Sprintf(`
			INSERT INTO %s (id, body, revision, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (id) DO UPDATE
			SET body = EXCLUDED.body, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at
		`, s.tables.ContentDocuments)
		if _, err := exec.Exec(txCtx, upsert, contentRowID, body, string(next)); err != nil {
			return fmt.Errorf("upsert content row: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			return "", err
		}
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}

	s.logger.Debug("content document written", "table", s.tables.ContentDocuments, "revision", next)
	return next, nil
}

// Close releases the pool when the store owns it
func (s *DocumentStore) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}
