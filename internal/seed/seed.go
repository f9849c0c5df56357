// Package seed loads meal fixtures into a kitchen store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/mealmax/internal/services/kitchen/storage"
)

//go:embed data/meals.v1.json
var defaultMealsJSON []byte

// FixtureVersion is the fixture document version this package understands.
const FixtureVersion = 1

// Fixture is a versioned list of meals.
type Fixture struct {
	Version int           `json:"version"`
	Meals   []MealFixture `json:"meals"`
}

// MealFixture is one meal entry in a fixture document.
type MealFixture struct {
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
}

// Input converts the fixture entry to a store input.
func (m MealFixture) Input() storage.MealInput {
	return storage.MealInput{
		Name:       m.Name,
		Cuisine:    m.Cuisine,
		Price:      m.Price,
		Difficulty: storage.Difficulty(m.Difficulty),
	}
}

// Store is the part of the kitchen store the seeder writes to.
type Store interface {
	CreateMeal(ctx context.Context, input storage.MealInput) (storage.Meal, error)
	ClearMeals(ctx context.Context) error
}

// Options controls one seeding run.
type Options struct {
	// Clear removes every meal before loading.
	Clear   bool
	Verbose bool
}

// Report summarizes a seeding run.
type Report struct {
	Created []storage.Meal
	Skipped []string
}

// DefaultFixture returns the embedded meal fixture.
func DefaultFixture() (Fixture, error) {
	return Decode(bytes.NewReader(defaultMealsJSON))
}

// Decode reads and validates a fixture document.
func Decode(r io.Reader) (Fixture, error) {
	if r == nil {
		return Fixture{}, errors.New("fixture reader is required")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var fixture Fixture
	if err := dec.Decode(&fixture); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if fixture.Version != FixtureVersion {
		return Fixture{}, fmt.Errorf("unsupported fixture version %d", fixture.Version)
	}
	for i, meal := range fixture.Meals {
		if _, err := meal.Input().Normalize(); err != nil {
			return Fixture{}, fmt.Errorf("fixture meal %d: %w", i, err)
		}
	}
	return fixture, nil
}

// Apply writes the fixture meals to store. Meals whose name already exists
// are skipped.
func Apply(ctx context.Context, store Store, fixture Fixture, opts Options) (Report, error) {
	if store == nil {
		return Report{}, errors.New("store is required")
	}
	if opts.Clear {
		if err := store.ClearMeals(ctx); err != nil {
			return Report{}, fmt.Errorf("clear meals: %w", err)
		}
	}

	var report Report
	for _, entry := range fixture.Meals {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		meal, err := store.CreateMeal(ctx, entry.Input())
		if errors.Is(err, storage.ErrMealExists) {
			report.Skipped = append(report.Skipped, entry.Name)
			if opts.Verbose {
				log.Printf("skip %s: already exists", entry.Name)
			}
			continue
		}
		if err != nil {
			return report, fmt.Errorf("create meal %s: %w", entry.Name, err)
		}
		report.Created = append(report.Created, meal)
		if opts.Verbose {
			log.Printf("created %s (id %d)", meal.Name, meal.ID)
		}
	}
	return report, nil
}
