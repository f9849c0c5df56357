// Package battle resolves head-to-head battles between two meals.
//
// A Resolver owns a roster of at most two combatants. Battle scores both,
// turns the score gap into a win threshold, draws one value from the
// injected RandomSource and lets the first combatant win only when the gap
// beats the draw. Results are reported to a StatsRecorder and the loser
// leaves the roster.
package battle

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/mealmax/internal/platform/errors"
	"github.com/louisbranch/mealmax/internal/services/kitchen/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxCombatants is the roster capacity.
const MaxCombatants = 2

var (
	// ErrRosterFull indicates Prep was called with a full roster.
	ErrRosterFull = apperrors.New(apperrors.CodeBattleRosterFull, "combatant list is full, cannot add more combatants")
	// ErrInsufficientCombatants indicates Battle was called without two combatants.
	ErrInsufficientCombatants = apperrors.New(apperrors.CodeBattleInsufficientCombatants, "two combatants must be prepped for a battle")
)

const tracerName = "github.com/louisbranch/mealmax/internal/services/battle"

// RandomSource yields one value in [0,1) per call.
type RandomSource interface {
	NextRandom(ctx context.Context) (float64, error)
}

// StatsRecorder records the outcome of a battle for one meal.
type StatsRecorder interface {
	RecordResult(ctx context.Context, mealID int, outcome storage.Outcome) error
}

// Result describes one resolved battle.
type Result struct {
	Winner storage.Meal
	Loser  storage.Meal
	// Scores in roster order.
	ScoreA float64
	ScoreB float64
	Gap    float64
	Draw   float64
}

// Resolver runs battles over its own roster. A Resolver is not safe for
// concurrent use.
type Resolver struct {
	random     RandomSource
	stats      StatsRecorder
	tracer     trace.Tracer
	combatants []storage.Meal
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Resolver) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewResolver returns a resolver with an empty roster.
func NewResolver(random RandomSource, stats StatsRecorder, opts ...Option) *Resolver {
	r := &Resolver{
		random:     random,
		stats:      stats,
		tracer:     otel.Tracer(tracerName),
		combatants: make([]storage.Meal, 0, MaxCombatants),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prep adds meal to the roster. Only capacity is checked: the same meal
// may be prepped twice.
func (r *Resolver) Prep(meal storage.Meal) error {
	if len(r.combatants) >= MaxCombatants {
		return apperrors.WithMetadata(apperrors.CodeBattleRosterFull,
			fmt.Sprintf("combatant list is full, cannot add %q", meal.Name),
			map[string]string{"Meal": meal.Name})
	}
	r.combatants = append(r.combatants, meal)
	return nil
}

// Clear empties the roster.
func (r *Resolver) Clear() {
	r.combatants = r.combatants[:0]
}

// Combatants returns a copy of the roster in insertion order.
func (r *Resolver) Combatants() []storage.Meal {
	out := make([]storage.Meal, len(r.combatants))
	copy(out, r.combatants)
	return out
}

// Battle resolves the prepped pair and returns the winner's name.
func (r *Resolver) Battle(ctx context.Context) (string, error) {
	result, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return result.Winner.Name, nil
}

// Resolve resolves the prepped pair and returns the full result.
//
// The roster is left untouched on any error; the loser is only removed once
// both stats updates succeeded.
func (r *Resolver) Resolve(ctx context.Context) (result Result, err error) {
	ctx, span := r.tracer.Start(ctx, "battle.Resolve")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.End()
	}()

	if len(r.combatants) < MaxCombatants {
		return Result{}, ErrInsufficientCombatants
	}
	if r.random == nil {
		return Result{}, errors.New("random source is not configured")
	}
	if r.stats == nil {
		return Result{}, errors.New("stats recorder is not configured")
	}

	a, b := r.combatants[0], r.combatants[1]
	span.AddEvent("scoring", trace.WithAttributes(
		attribute.String("battle.combatant_a", a.Name),
		attribute.String("battle.combatant_b", b.Name),
	))
	scoreA, err := Score(a)
	if err != nil {
		return Result{}, fmt.Errorf("score %s: %w", a.Name, err)
	}
	scoreB, err := Score(b)
	if err != nil {
		return Result{}, fmt.Errorf("score %s: %w", b.Name, err)
	}
	gap := Gap(scoreA, scoreB)

	draw, err := r.random.NextRandom(ctx)
	if err != nil {
		return Result{}, err
	}
	span.AddEvent("deciding", trace.WithAttributes(
		attribute.Float64("battle.score_a", scoreA),
		attribute.Float64("battle.score_b", scoreB),
		attribute.Float64("battle.gap", gap),
		attribute.Float64("battle.draw", draw),
	))

	winner, loser, loserIndex := b, a, 0
	if gap > draw {
		winner, loser, loserIndex = a, b, 1
	}

	if err := r.stats.RecordResult(ctx, winner.ID, storage.OutcomeWin); err != nil {
		return Result{}, fmt.Errorf("record win for %s: %w", winner.Name, err)
	}
	if err := r.stats.RecordResult(ctx, loser.ID, storage.OutcomeLoss); err != nil {
		return Result{}, fmt.Errorf("record loss for %s: %w", loser.Name, err)
	}

	r.combatants = append(r.combatants[:loserIndex], r.combatants[loserIndex+1:]...)
	span.AddEvent("resolved", trace.WithAttributes(
		attribute.String("battle.winner", winner.Name),
		attribute.Int("battle.winner_id", winner.ID),
	))

	return Result{
		Winner: winner,
		Loser:  loser,
		ScoreA: scoreA,
		ScoreB: scoreB,
		Gap:    gap,
		Draw:   draw,
	}, nil
}
