package seed

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/mealmax/internal/services/kitchen/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/mealmax.db" {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, "data/mealmax.db")
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("locale = %q, want %q", cfg.Locale, "en-US")
	}
	if cfg.File != "" || cfg.Clear || cfg.Verbose {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Setenv("MEALMAX_DB_PATH", "/tmp/env.db")
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-file", "meals.json", "-clear", "-v", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("db path = %q, want env value", cfg.DBPath)
	}
	if cfg.File != "meals.json" || !cfg.Clear || !cfg.Verbose || cfg.Locale != "pt-BR" {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestParseConfigRejectsEmptyDBPath(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-db", ""}); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestRunSeedsEmbeddedFixture(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "seed.db")

	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath}, &out); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "seeded 10 meals, skipped 0") {
		t.Fatalf("first output = %q", out.String())
	}

	out.Reset()
	if err := Run(context.Background(), Config{DBPath: dbPath}, &out); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "seeded 0 meals, skipped 10") {
		t.Fatalf("second output = %q", out.String())
	}

	out.Reset()
	if err := Run(context.Background(), Config{DBPath: dbPath, Clear: true}, &out); err != nil {
		t.Fatalf("clear run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "seeded 10 meals, skipped 0") {
		t.Fatalf("clear output = %q", out.String())
	}
}

func TestRunSeedsFixtureFile(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "meals.json")
	doc := `{"version":1,"meals":[{"name":"Crêpe","cuisine":"French","price":4.5,"difficulty":"LOW"}]}`
	if err := os.WriteFile(fixturePath, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	dbPath := filepath.Join(dir, "seed.db")

	if err := Run(context.Background(), Config{DBPath: dbPath, File: fixturePath}, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	meal, err := store.GetMealByName(context.Background(), "Crêpe")
	if err != nil {
		t.Fatalf("get meal: %v", err)
	}
	if meal.Price != 4.5 {
		t.Fatalf("price = %v, want 4.5", meal.Price)
	}
}

func TestRunMissingFixtureFile(t *testing.T) {
	cfg := Config{
		DBPath: filepath.Join(t.TempDir(), "seed.db"),
		File:   filepath.Join(t.TempDir(), "missing.json"),
	}
	if err := Run(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}
