// Package battle parses battle command flags and runs one battle against the
// local kitchen store.
package battle

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	entrypoint "github.com/louisbranch/mealmax/internal/platform/cmd"
	"github.com/louisbranch/mealmax/internal/platform/timeouts"
	"github.com/louisbranch/mealmax/internal/random"
	battlesvc "github.com/louisbranch/mealmax/internal/services/battle"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage/sqlite"
)

// Random source names accepted by RANDOM_SOURCE.
const (
	RandomSourceRemote = "remote"
	RandomSourceSeeded = "seeded"
)

// Config holds battle command configuration.
type Config struct {
	DBPath        string        `env:"DB_PATH" envDefault:"data/mealmax.db"`
	Locale        string        `env:"LOCALE" envDefault:"en-US"`
	RandomSource  string        `env:"RANDOM_SOURCE" envDefault:"remote"`
	RandomURL     string        `env:"RANDOM_URL"`
	RandomTimeout time.Duration `env:"RANDOM_TIMEOUT" envDefault:"5s"`
	RandomSeed    int64         `env:"RANDOM_SEED"`

	MealA       string
	MealB       string
	Leaderboard bool
	OrderBy     string
	Limit       int
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.StringVar(&cfg.RandomSource, "random", cfg.RandomSource, "random source (remote, seeded)")
	fs.Int64Var(&cfg.RandomSeed, "seed", cfg.RandomSeed, "seed for the seeded random source (0 = random)")
	fs.StringVar(&cfg.MealA, "a", "", "name of the first combatant")
	fs.StringVar(&cfg.MealB, "b", "", "name of the second combatant")
	fs.BoolVar(&cfg.Leaderboard, "leaderboard", false, "print the leaderboard")
	fs.StringVar(&cfg.OrderBy, "order-by", string(storage.LeaderboardByWins), "leaderboard order (wins, win_pct)")
	fs.IntVar(&cfg.Limit, "limit", 0, "leaderboard size (0 = default)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.MealA = strings.TrimSpace(c.MealA)
	c.MealB = strings.TrimSpace(c.MealB)
	c.RandomSource = strings.ToLower(strings.TrimSpace(c.RandomSource))
	switch c.RandomSource {
	case RandomSourceRemote, RandomSourceSeeded:
	default:
		return fmt.Errorf("unknown random source %q (valid: remote, seeded)", c.RandomSource)
	}
	if (c.MealA == "") != (c.MealB == "") {
		return errors.New("both -a and -b are required for a battle")
	}
	if c.MealA == "" && !c.Leaderboard {
		return errors.New("nothing to do: pass -a and -b, or -leaderboard")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("database path is required")
	}
	return nil
}

// Run executes the battle command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBattle, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
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

	if cfg.MealA != "" {
		source, err := newRandomSource(cfg)
		if err != nil {
			return err
		}
		if err := fight(ctx, store, source, cfg.MealA, cfg.MealB, out); err != nil {
			return err
		}
	}
	if cfg.Leaderboard {
		return printLeaderboard(ctx, store, storage.LeaderboardQuery{
			OrderBy: storage.LeaderboardOrder(cfg.OrderBy),
			Limit:   cfg.Limit,
		}, out)
	}
	return nil
}

func newRandomSource(cfg Config) (battlesvc.RandomSource, error) {
	if cfg.RandomSource == RandomSourceSeeded {
		source, err := random.NewSeeded(cfg.RandomSeed)
		if err != nil {
			return nil, err
		}
		return source, nil
	}
	timeout := cfg.RandomTimeout
	if timeout <= 0 {
		timeout = timeouts.RandomFetch
	}
	return random.NewRemote(cfg.RandomURL, random.WithTimeout(timeout)), nil
}

func fight(ctx context.Context, store storage.Store, source battlesvc.RandomSource, nameA, nameB string, out io.Writer) error {
	resolver := battlesvc.NewResolver(source, store)
	for _, name := range []string{nameA, nameB} {
		meal, err := store.GetMealByName(ctx, name)
		if err != nil {
			return err
		}
		if err := resolver.Prep(meal); err != nil {
			return err
		}
	}

	if seeded, ok := source.(*random.Seeded); ok {
		fmt.Fprintf(out, "seed: %d\n", seeded.Seed())
	}
	result, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%.2f) vs %s (%.2f): gap %.2f, draw %.2f\n",
		nameA, result.ScoreA, nameB, result.ScoreB, result.Gap, result.Draw)
	fmt.Fprintf(out, "winner: %s\n", result.Winner.Name)
	return nil
}

func printLeaderboard(ctx context.Context, store storage.StatsStore, query storage.LeaderboardQuery, out io.Writer) error {
	entries, err := store.Leaderboard(ctx, query)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tMEAL\tCUISINE\tBATTLES\tWINS\tWIN %")
	for i, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.1f\n",
			i+1, entry.Meal.Name, entry.Meal.Cuisine, entry.Meal.Battles, entry.Meal.Wins, entry.WinPct)
	}
	return w.Flush()
}
