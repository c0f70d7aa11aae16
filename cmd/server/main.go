package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coursetree/internal/auth"
	"coursetree/internal/config"
	"coursetree/internal/handler"
	"coursetree/internal/middleware"
	"coursetree/internal/repository"
	"coursetree/internal/seed"
	contentService "coursetree/internal/service/content"
	publicService "coursetree/internal/service/public"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging, optionally teed to a rotated file
	var logFile io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}
	logger := config.NewLogger(cfg.Environment, logFile)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"save_failure_mode", cfg.SaveFailureMode,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the document store
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer store.Close()

	seeded, err := seed.EnsureSeeded(ctx, store, cfg.ContentSeedPath, contentService.ValidateDocument, logger)
	if err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}
	if seeded {
		logger.Info("empty store seeded", "path", cfg.ContentSeedPath)
	}

	// Admin authentication
	verifier, issuer, err := auth.NewAdminVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create admin verifier: %v", err)
	}
	defer verifier.Close()
	authenticator := auth.NewPasswordAuthenticator(cfg.AdminPasswordHash, cfg.AdminPassword, issuer, logger)

	// Create services
	courseSvc := contentService.NewCourseService(store, logger)
	nodeSvc := contentService.NewNodeService(store, logger)
	documentSvc := contentService.NewDocumentService(store, logger)
	publicSvc := publicService.NewPublicService(store, cfg.PublicBaseURL, logger)

	// Create handlers
	publicHandler := handler.NewPublicHandler(publicSvc, logger)
	authHandler := handler.NewAuthHandler(authenticator, logger)
	contentHandler := handler.NewContentHandler(documentSvc, cfg.SaveFailureMode, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, nodeSvc, cfg.SaveFailureMode, logger)
	nodeHandler := handler.NewNodeHandler(nodeSvc, cfg.SaveFailureMode, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(verifier, logger)
	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAdmin(h))
	}

	// Public routes
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /sitemap.xml", publicHandler.Sitemap)
	mux.HandleFunc("GET /api/public/courses", publicHandler.ListCourses)
	mux.HandleFunc("GET /api/public/courses/{courseId}", publicHandler.GetCourse)
	mux.HandleFunc("GET /api/public/courses/{courseId}/nodes/{param}", publicHandler.GetNode)
	mux.HandleFunc("GET /api/public/courses/{courseId}/nodes/{param}/children", publicHandler.GetChildren)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Whole-document routes
	admin("GET /api/content", contentHandler.GetContent)
	admin("PUT /api/content", contentHandler.ReplaceContent)
	admin("GET /api/content/export", contentHandler.Export)

	// Course routes
	admin("GET /api/courses", courseHandler.ListCourses)
	admin("POST /api/courses", courseHandler.CreateCourse)
	admin("GET /api/courses/{courseId}", courseHandler.GetCourse)
	admin("PATCH /api/courses/{courseId}", courseHandler.UpdateCourse)
	admin("DELETE /api/courses/{courseId}", courseHandler.DeleteCourse)
	admin("GET /api/courses/{courseId}/tree", courseHandler.GetTree)

	// Node routes
	admin("POST /api/courses/{courseId}/nodes", nodeHandler.CreateNode)
	admin("GET /api/courses/{courseId}/nodes/{id}", nodeHandler.GetNode)
	admin("GET /api/courses/{courseId}/preview/{param}", nodeHandler.PreviewNode)
	admin("PUT /api/courses/{courseId}/nodes/{id}", nodeHandler.UpdateNode)
	admin("DELETE /api/courses/{courseId}/nodes/{id}", nodeHandler.DeleteNode)
	admin("POST /api/courses/{courseId}/nodes/{id}/toggle-active", nodeHandler.ToggleActive)
	admin("POST /api/courses/{courseId}/nodes/{id}/toggle-visible", nodeHandler.ToggleVisible)
	admin("POST /api/courses/{courseId}/nodes/{id}/move-up", nodeHandler.MoveUp)
	admin("POST /api/courses/{courseId}/nodes/{id}/move-down", nodeHandler.MoveDown)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Routes
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - outermost so OPTIONS pre-flight requests never reach auth
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "If-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
