package main

import (
	"context"
	"flag"
	"log"

	"coursetree/internal/config"
	"coursetree/internal/repository"
	"coursetree/internal/seed"
	contentService "coursetree/internal/service/content"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	file := flag.String("file", "", "Seed document (.json, .yaml or .yml); defaults to CONTENT_SEED_PATH")
	force := flag.Bool("force", false, "Replace the stored document even if it already has content")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	path := *file
	if path == "" {
		path = cfg.ContentSeedPath
	}
	if path == "" {
		log.Fatalf("No seed file: pass -file or set CONTENT_SEED_PATH")
	}

	// SAFETY: Prevent overwriting live content in production
	if cfg.Environment == "prod" && *force {
		log.Fatalf("🚫 BLOCKED: Cannot run -force in production environment")
	}

	logger := config.NewLogger(cfg.Environment, nil)

	ctx := context.Background()
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close()

	if !*force {
		log.Printf("🌱 Seeding empty store (environment: %s, store: %s)", cfg.Environment, cfg.StoreDriver)
		seeded, err := seed.EnsureSeeded(ctx, store, path, contentService.ValidateDocument, logger)
		if err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
		if !seeded {
			log.Println("✅ Store already has content, nothing to do (use -force to replace it)")
			return
		}
		log.Println("🎉 Seeding complete!")
		return
	}

	log.Printf("⚠️  Replacing stored content with %s (environment: %s, store: %s)", path, cfg.Environment, cfg.StoreDriver)
	doc, err := seed.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}
	stored, rev, err := contentService.NewDocumentService(store, logger).ReplaceDocument(ctx, doc, "")
	if err != nil {
		log.Fatalf("Failed to replace content: %v", err)
	}
	log.Printf("🎉 Replaced content: %d courses (revision %s)", len(stored.Courses), rev)
}
