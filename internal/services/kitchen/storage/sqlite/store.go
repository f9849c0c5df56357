// Package sqlite provides a SQLite-backed kitchen storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/mealmax/internal/platform/pagination"
	sqlitemigrate "github.com/louisbranch/mealmax/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/mealmax/internal/platform/timeouts"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var leaderboardPageSize = pagination.PageSizeConfig{Default: 50, Max: 500}

var leaderboardOrder = pagination.OrderByConfig{
	Default: string(storage.LeaderboardByWins),
	Allowed: []string{string(storage.LeaderboardByWins), string(storage.LeaderboardByWinPct)},
}

const mealColumns = `id, name, cuisine, price, difficulty, battles, wins, deleted, created_at, updated_at`

// Store persists kitchen state in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite kitchen store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(" + strconv.FormatInt(timeouts.StoreBusy.Milliseconds(), 10) + ")"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CreateMeal validates and inserts one meal.
func (s *Store) CreateMeal(ctx context.Context, input storage.MealInput) (storage.Meal, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Meal{}, err
	}
	input, err := input.Normalize()
	if err != nil {
		return storage.Meal{}, err
	}
	now := s.now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO meals (name, cuisine, price, difficulty, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		input.Name,
		input.Cuisine,
		input.Price,
		string(input.Difficulty),
		toMillis(now),
		toMillis(now),
	)
	if err != nil {
		if isMealNameUniqueViolation(err) {
			return storage.Meal{}, storage.MealExists(input.Name)
		}
		return storage.Meal{}, fmt.Errorf("create meal: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Meal{}, fmt.Errorf("create meal id: %w", err)
	}

	return storage.Meal{
		ID:         int(id),
		Name:       input.Name,
		Cuisine:    input.Cuisine,
		Price:      input.Price,
		Difficulty: input.Difficulty,
		CreatedAt:  fromMillis(toMillis(now)),
		UpdatedAt:  fromMillis(toMillis(now)),
	}, nil
}

// GetMealByID returns one active meal.
func (s *Store) GetMealByID(ctx context.Context, id int) (storage.Meal, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Meal{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)
	return activeMeal(row, storage.MealRefID(id))
}

// GetMealByName returns one active meal by its exact name.
func (s *Store) GetMealByName(ctx context.Context, name string) (storage.Meal, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Meal{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Meal{}, storage.ErrNameEmpty
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE name = ?`, name)
	return activeMeal(row, storage.MealRefName(name))
}

func activeMeal(row *sql.Row, ref string) (storage.Meal, error) {
	meal, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Meal{}, storage.MealNotFound(ref)
		}
		return storage.Meal{}, fmt.Errorf("get meal: %w", err)
	}
	if meal.Deleted {
		return storage.Meal{}, storage.MealDeleted(ref)
	}
	return meal, nil
}

// DeleteMeal soft-deletes one meal.
func (s *Store) DeleteMeal(ctx context.Context, id int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.withActiveMeal(ctx, id, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE meals SET deleted = 1, updated_at = ? WHERE id = ?`,
			toMillis(s.now()), id,
		); err != nil {
			return fmt.Errorf("delete meal: %w", err)
		}
		return nil
	})
}

// ClearMeals removes every meal, including soft-deleted ones, and restarts ID
// allocation.
func (s *Store) ClearMeals(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear meals: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM meals`); err != nil {
		return fmt.Errorf("clear meals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'meals'`); err != nil {
		return fmt.Errorf("reset meal ids: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear meals: %w", err)
	}
	return nil
}

// RecordResult counts one battle for the meal, and one win when outcome is
// OutcomeWin.
func (s *Store) RecordResult(ctx context.Context, mealID int, outcome storage.Outcome) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	var winDelta int
	switch outcome {
	case storage.OutcomeWin:
		winDelta = 1
	case storage.OutcomeLoss:
		winDelta = 0
	default:
		return storage.InvalidOutcome(string(outcome))
	}

	return s.withActiveMeal(ctx, mealID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE meals
			    SET battles = battles + 1,
			        wins = wins + ?,
			        updated_at = ?
			  WHERE id = ?`,
			winDelta, toMillis(s.now()), mealID,
		); err != nil {
			return fmt.Errorf("update meal stats: %w", err)
		}
		return nil
	})
}

// withActiveMeal runs fn in a transaction after checking the meal exists and
// is not deleted.
func (s *Store) withActiveMeal(ctx context.Context, id int, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var deleted bool
	err = tx.QueryRowContext(ctx, `SELECT deleted FROM meals WHERE id = ?`, id).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MealNotFound(storage.MealRefID(id))
		}
		return fmt.Errorf("check meal: %w", err)
	}
	if deleted {
		return storage.MealDeleted(storage.MealRefID(id))
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Leaderboard ranks active meals that fought at least once.
func (s *Store) Leaderboard(ctx context.Context, query storage.LeaderboardQuery) ([]storage.LeaderboardEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	orderBy, err := pagination.NormalizeOrderBy(string(query.OrderBy), leaderboardOrder)
	if err != nil {
		return nil, storage.InvalidLeaderboardOrder(string(query.OrderBy))
	}
	limit := pagination.ClampPageSize(query.Limit, leaderboardPageSize)

	orderClause := `wins DESC, id ASC`
	if storage.LeaderboardOrder(orderBy) == storage.LeaderboardByWinPct {
		orderClause = `win_ratio DESC, wins DESC, id ASC`
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+mealColumns+`, (wins * 1.0 / battles) AS win_ratio
		   FROM meals
		  WHERE deleted = 0 AND battles > 0
		  ORDER BY `+orderClause+`
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]storage.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var (
			entry storage.LeaderboardEntry
			ratio float64
		)
		meal, err := scanMeal(rows, &ratio)
		if err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entry.Meal = meal
		entry.WinPct = math.Round(ratio*1000) / 10
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner, extra ...any) (storage.Meal, error) {
	var (
		meal       storage.Meal
		difficulty string
		createdAt  int64
		updatedAt  int64
	)
	dest := []any{
		&meal.ID,
		&meal.Name,
		&meal.Cuisine,
		&meal.Price,
		&difficulty,
		&meal.Battles,
		&meal.Wins,
		&meal.Deleted,
		&createdAt,
		&updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return storage.Meal{}, err
	}
	meal.Difficulty = storage.Difficulty(difficulty)
	meal.CreatedAt = fromMillis(createdAt)
	meal.UpdatedAt = fromMillis(updatedAt)
	return meal, nil
}

func isMealNameUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "meals.name")
}
