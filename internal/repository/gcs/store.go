// Package gcs stores the content document as a single Cloud Storage object.
// The object generation is the document revision.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Config selects the bucket and object holding the document
type Config struct {
	Bucket       string
	Object       string
	EmulatorHost string
}

// Store is a DocumentStore backed by one GCS object
type Store struct {
	client *storage.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewStore creates the storage client. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS_JSON, GOOGLE_APPLICATION_CREDENTIALS, or the
// default chain. With an emulator host set, the client skips authentication.
func NewStore(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs bucket cannot be empty")
	}
	if cfg.Object == "" {
		cfg.Object = "content.json"
	}

	opts := clientOptionsFromEnv()
	if cfg.EmulatorHost != "" {
		// the storage client reads the emulator address from the environment
		if err := os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("set emulator host: %w", err)
		}
		opts = []option.ClientOption{option.WithoutAuthentication()}
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Info("gcs store initialized", "bucket", cfg.Bucket, "object", cfg.Object, "emulator", cfg.EmulatorHost != "")

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		object: cfg.Object,
		logger: logger,
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (s *Store) handle() *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.object)
}

// Load downloads the object. A missing object is an empty document with no revision.
func (s *Store) Load(ctx context.Context) (*content.Document, repositories.Revision, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	r, err := s.handle().NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return content.NewDocument(), "", nil
	}
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: fmt.Errorf("open gs://%s/%s: %w", s.bucket, s.object, err)}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: fmt.Errorf("read gs://%s/%s: %w", s.bucket, s.object, err)}
	}

	doc, err := content.DecodeJSON(data)
	if err != nil {
		return nil, "", &domain.PersistenceError{Op: "load", Err: err}
	}
	return doc, formatGeneration(r.Attrs.Generation), nil
}

// Save uploads the document. A non-empty ifMatch becomes a generation precondition.
func (s *Store) Save(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (repositories.Revision, error) {
	data, err := content.EncodeJSON(doc)
	if err != nil {
		return "", &domain.PersistenceError{Op: "save", Err: err}
	}

	obj := s.handle()
	if ifMatch != "" {
		gen, err := parseGeneration(ifMatch)
		if err != nil {
			// a revision this store never issued cannot match
			return "", domain.ErrPreconditionFailed
		}
		obj = obj.If(storage.Conditions{GenerationMatch: gen})
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", s.saveError(err)
	}
	if err := w.Close(); err != nil {
		return "", s.saveError(err)
	}

	rev := formatGeneration(w.Attrs().Generation)
	s.logger.Debug("content document uploaded", "bucket", s.bucket, "object", s.object, "revision", rev)
	return rev, nil
}

func (s *Store) saveError(err error) error {
	if isPreconditionFailed(err) {
		return domain.ErrPreconditionFailed
	}
	return &domain.PersistenceError{Op: "save", Err: fmt.Errorf("write gs://%s/%s: %w", s.bucket, s.object, err)}
}

// Close closes the storage client
func (s *Store) Close() error {
	return s.client.Close()
}

func formatGeneration(gen int64) repositories.Revision {
	return repositories.Revision(strconv.FormatInt(gen, 10))
}

func parseGeneration(rev repositories.Revision) (int64, error) {
	gen, err := strconv.ParseInt(string(rev), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid generation %q: %w", rev, err)
	}
	if gen <= 0 {
		return 0, fmt.Errorf("invalid generation %q", rev)
	}
	return gen, nil
}

func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusPreconditionFailed
	}
	return false
}
