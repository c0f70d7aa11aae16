package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"coursetree/internal/config"
	"coursetree/internal/repository/file"
	"coursetree/internal/repository/memory"
)

func TestOpenStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverFile, ContentFile: filepath.Join(t.TempDir(), "content.json")}
		store, err := OpenStore(ctx, cfg, logger)
		if err != nil {
			t.Fatalf("OpenStore() error = %v", err)
		}
		defer store.Close()
		if _, ok := store.(*file.Store); !ok {
			t.Errorf("store = %T, want *file.Store", store)
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{StoreDriver: config.DriverMemory}, logger)
		if err != nil {
			t.Fatalf("OpenStore() error = %v", err)
		}
		if _, ok := store.(*memory.Store); !ok {
			t.Errorf("store = %T, want *memory.Store", store)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := OpenStore(ctx, &config.Config{StoreDriver: "s3"}, logger); err == nil {
			t.Error("expected error for unknown driver")
		}
	})

	t.Run("redis without addr", func(t *testing.T) {
		if _, err := OpenStore(ctx, &config.Config{StoreDriver: config.DriverRedis}, logger); err == nil {
			t.Error("expected error for missing redis address")
		}
	})
}
