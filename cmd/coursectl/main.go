// Command coursectl is the operator CLI for the course content store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"coursetree/internal/config"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "coursectl",
		Short:         "Inspect and maintain the course content document",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store activity to stderr")

	env := &environment{verbose: &verbose}
	root.AddCommand(
		newExportCommand(env),
		newImportCommand(env),
		newValidateCommand(env),
		newSitemapCommand(env),
		newTreeCommand(env),
		newTokenCommand(env),
	)
	return root
}

// environment loads configuration lazily so --help never touches the store
type environment struct {
	verbose *bool
}

func (e *environment) config() *config.Config {
	_ = godotenv.Load()
	return config.Load()
}

// logger writes to stderr so command output on stdout stays clean
func (e *environment) logger() *slog.Logger {
	level := slog.LevelWarn
	if *e.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (e *environment) openStore(ctx context.Context) (repositories.DocumentStore, *config.Config, *slog.Logger, error) {
	cfg := e.config()
	logger := e.logger()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	return store, cfg, logger, nil
}
