// Package seed parses seed command flags and loads meal fixtures.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/mealmax/internal/platform/cmd"
	"github.com/louisbranch/mealmax/internal/seed"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"DB_PATH" envDefault:"data/mealmax.db"`
	Locale string `env:"LOCALE" envDefault:"en-US"`

	File    string
	Clear   bool
	Verbose bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.StringVar(&cfg.File, "file", "", "meal fixture file (default: embedded fixture)")
	fs.BoolVar(&cfg.Clear, "clear", false, "remove every meal before seeding")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("database path is required")
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		fixture, err := loadFixture(cfg.File)
		if err != nil {
			return err
		}
		if dir := filepath.Dir(cfg.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create database dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := seed.Apply(ctx, store, fixture, seed.Options{Clear: cfg.Clear, Verbose: cfg.Verbose})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "seeded %d meals, skipped %d existing\n", len(report.Created), len(report.Skipped))
		return nil
	})
}

func loadFixture(path string) (seed.Fixture, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return seed.DefaultFixture()
	}
	f, err := os.Open(path)
	if err != nil {
		return seed.Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return seed.Decode(f)
}
