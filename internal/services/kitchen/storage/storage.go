// Package storage defines persistence contracts for the meal catalog and
// battle statistics.
package storage

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/mealmax/internal/platform/errors"
)

var (
	// ErrMealNotFound indicates a requested meal is missing.
	ErrMealNotFound = apperrors.New(apperrors.CodeMealNotFound, "meal not found")
	// ErrMealExists indicates a meal with the same name already exists.
	ErrMealExists = apperrors.New(apperrors.CodeMealAlreadyExists, "meal already exists")
	// ErrMealDeleted indicates the meal was soft-deleted.
	ErrMealDeleted = apperrors.New(apperrors.CodeMealAlreadyDeleted, "meal has been deleted")
	// ErrNameEmpty indicates a meal without a name.
	ErrNameEmpty = apperrors.New(apperrors.CodeMealNameEmpty, "meal name is required")
	// ErrCuisineEmpty indicates a meal without a cuisine.
	ErrCuisineEmpty = apperrors.New(apperrors.CodeMealCuisineEmpty, "cuisine is required")
	// ErrInvalidPrice indicates a non-positive price.
	ErrInvalidPrice = apperrors.New(apperrors.CodeMealInvalidPrice, "price must be a positive number")
	// ErrInvalidDifficulty indicates a difficulty outside HIGH, MED and LOW.
	ErrInvalidDifficulty = apperrors.New(apperrors.CodeMealInvalidDifficulty, "invalid difficulty level")
	// ErrInvalidOutcome indicates a stats update that is neither win nor loss.
	ErrInvalidOutcome = apperrors.New(apperrors.CodeStatsInvalidOutcome, "invalid battle outcome")
	// ErrInvalidLeaderboardOrder indicates an unsupported leaderboard ordering.
	ErrInvalidLeaderboardOrder = apperrors.New(apperrors.CodeLeaderboardInvalidOrder, "invalid leaderboard order")
)

// Difficulty is how hard a meal is to prepare.
type Difficulty string

const (
	DifficultyHigh Difficulty = "HIGH"
	DifficultyMed  Difficulty = "MED"
	DifficultyLow  Difficulty = "LOW"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyHigh, DifficultyMed, DifficultyLow:
		return true
	default:
		return false
	}
}

// ParseDifficulty validates a raw difficulty. Matching is exact: "low" is
// rejected like any other unknown value.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.TrimSpace(raw))
	if !d.Valid() {
		return "", InvalidDifficulty(raw)
	}
	return d, nil
}

// Outcome is the result of one battle for one meal.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Meal is a catalog entry able to enter battles.
type Meal struct {
	ID         int
	Name       string
	Cuisine    string
	Price      float64
	Difficulty Difficulty
	Battles    int
	Wins       int
	Deleted    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MealInput carries the caller-supplied attributes of a new meal.
type MealInput struct {
	Name       string
	Cuisine    string
	Price      float64
	Difficulty Difficulty
}

// Normalize trims whitespace and validates the input.
func (in MealInput) Normalize() (MealInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Cuisine = strings.TrimSpace(in.Cuisine)
	if in.Name == "" {
		return MealInput{}, ErrNameEmpty
	}
	if in.Cuisine == "" {
		return MealInput{}, ErrCuisineEmpty
	}
	if !(in.Price > 0) || math.IsInf(in.Price, 0) {
		price := strconv.FormatFloat(in.Price, 'f', -1, 64)
		return MealInput{}, apperrors.WithMetadata(apperrors.CodeMealInvalidPrice,
			fmt.Sprintf("invalid price: %s. price must be a positive number", price),
			map[string]string{"Price": price})
	}
	if !in.Difficulty.Valid() {
		return MealInput{}, InvalidDifficulty(string(in.Difficulty))
	}
	return in, nil
}

// LeaderboardOrder selects how the leaderboard is ranked.
type LeaderboardOrder string

const (
	LeaderboardByWins   LeaderboardOrder = "wins"
	LeaderboardByWinPct LeaderboardOrder = "win_pct"
)

// LeaderboardQuery bounds one leaderboard read.
type LeaderboardQuery struct {
	OrderBy LeaderboardOrder
	Limit   int
}

// LeaderboardEntry is one ranked meal. WinPct is a percentage rounded to one
// decimal place.
type LeaderboardEntry struct {
	Meal   Meal
	WinPct float64
}

// MealStore persists the meal catalog. Deletion is soft: deleted meals keep
// their row and name but are hidden from lookups.
type MealStore interface {
	CreateMeal(ctx context.Context, input MealInput) (Meal, error)
	GetMealByID(ctx context.Context, id int) (Meal, error)
	GetMealByName(ctx context.Context, name string) (Meal, error)
	DeleteMeal(ctx context.Context, id int) error
	ClearMeals(ctx context.Context) error
}

// StatsStore persists battle results.
type StatsStore interface {
	RecordResult(ctx context.Context, mealID int, outcome Outcome) error
	Leaderboard(ctx context.Context, query LeaderboardQuery) ([]LeaderboardEntry, error)
}

// Store is the full kitchen persistence surface.
type Store interface {
	MealStore
	StatsStore
}

// MealNotFound returns ErrMealNotFound for the meal identified by ref.
func MealNotFound(ref string) error {
	return apperrors.WithMetadata(apperrors.CodeMealNotFound,
		fmt.Sprintf("meal %s not found", ref), map[string]string{"Meal": ref})
}

// MealDeleted returns ErrMealDeleted for the meal identified by ref.
func MealDeleted(ref string) error {
	return apperrors.WithMetadata(apperrors.CodeMealAlreadyDeleted,
		fmt.Sprintf("meal %s has been deleted", ref), map[string]string{"Meal": ref})
}

// MealExists returns ErrMealExists for name.
func MealExists(name string) error {
	return apperrors.WithMetadata(apperrors.CodeMealAlreadyExists,
		fmt.Sprintf("meal with name '%s' already exists", name), map[string]string{"Name": name})
}

// InvalidDifficulty returns ErrInvalidDifficulty for raw.
func InvalidDifficulty(raw string) error {
	return apperrors.WithMetadata(apperrors.CodeMealInvalidDifficulty,
		fmt.Sprintf("invalid difficulty level: %s. must be 'LOW', 'MED', or 'HIGH'", raw),
		map[string]string{"Difficulty": raw})
}

// InvalidOutcome returns ErrInvalidOutcome for raw.
func InvalidOutcome(raw string) error {
	return apperrors.WithMetadata(apperrors.CodeStatsInvalidOutcome,
		fmt.Sprintf("invalid result: %s. expected 'win' or 'loss'", raw),
		map[string]string{"Outcome": raw})
}

// MealRefID formats a meal ID the way error messages reference it.
func MealRefID(id int) string {
	return "with ID " + strconv.Itoa(id)
}

// MealRefName formats a meal name the way error messages reference it.
func MealRefName(name string) string {
	return "with name '" + name + "'"
}

// InvalidLeaderboardOrder returns ErrInvalidLeaderboardOrder for raw.
func InvalidLeaderboardOrder(raw string) error {
	return apperrors.WithMetadata(apperrors.CodeLeaderboardInvalidOrder,
		fmt.Sprintf("invalid sort_by parameter: %s", raw),
		map[string]string{"OrderBy": raw})
}
