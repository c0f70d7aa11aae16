// Package redis stores the content document under a pair of Redis keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// maxWatchRetries bounds retries of an unconditional save that lost a WATCH race
const maxWatchRetries = 5

// Config selects the Redis server and key namespace
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Store is a DocumentStore holding the JSON document at <prefix>content
// and its revision at <prefix>content:rev
type Store struct {
	rdb    *goredis.Client
	docKey string
	revKey string
	logger *slog.Logger
}

// NewStore connects and pings the server
func NewStore(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Addr == "" {
		return nil, errors.New("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	docKey, revKey := keys(cfg.KeyPrefix)
	logger.Info("redis store initialized", "addr", cfg.Addr, "db", cfg.DB, "key", docKey)

	return &Store{
		rdb:    rdb,
		docKey: docKey,
		revKey: revKey,
		logger: logger,
	}, nil
}

func keys(prefix string) (docKey, revKey string) {
	docKey = prefix + "content"
	return docKey, docKey + ":rev"
}

// Load reads both keys atomically. Missing keys mean an empty document with no revision.
func (s *Store) Load(ctx context.Context) (*content.Document, repositories.Revision, error) {
	vals, err := s.rdb.MGet(ctx, s.docKey, s.revKey).Result()
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return content.NewDocument(), "", nil
	}

	doc, err := content.DecodeJSON([]byte(raw))
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: fmt.Errorf("key %s: %w", s.docKey, err)}
	}

	rev, _ := vals[1].(string)
	return doc, repositories.Revision(rev), nil
}

// Save writes both keys in one MULTI block while watching the revision key
func (s *Store) Save(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (repositories.Revision, error) {
	data, err := content.EncodeJSON(doc)
	if err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}
	next := repositories.Revision(uuid.NewString())

	write := func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, s.revKey).Result()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if ifMatch != "" && repositories.Revision(current) != ifMatch {
			return domain.ErrPreconditionFailed
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, s.docKey, data, 0)
			pipe.Set(ctx, s.revKey, string(next), 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err = s.rdb.Watch(ctx, write, s.revKey)
		if err == nil {
			s.logger.Debug("content document written", "key", s.docKey, "revision", next)
			return next, nil
		}
		if errors.Is(err, domain.ErrPreconditionFailed) {
			return "", err
		}
		if errors.Is(err, goredis.TxFailedErr) {
			if ifMatch != "" {
				// someone else wrote between our check and EXEC
				return "", domain.ErrPreconditionFailed
			}
			continue
		}
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}

	return "", &domain.PersistenceError{Op: "save", Err: fmt.Errorf("gave up after %d concurrent writes", maxWatchRetries)}
}

// Close closes the client
func (s *Store) Close() error {
	return s.rdb.Close()
}
