package battle

import (
	"unicode/utf8"

	"github.com/louisbranch/mealmax/internal/services/kitchen/storage"
)

// gapScale normalizes the absolute score difference into a win threshold.
const gapScale = 100.0

var difficultyPenalty = map[storage.Difficulty]int{
	storage.DifficultyHigh: 1,
	storage.DifficultyMed:  2,
	storage.DifficultyLow:  3,
}

// Penalty returns the fixed score penalty for a difficulty.
func Penalty(d storage.Difficulty) (int, error) {
	penalty, ok := difficultyPenalty[d]
	if !ok {
		return 0, storage.InvalidDifficulty(string(d))
	}
	return penalty, nil
}

// Score computes price * len(cuisine) - penalty(difficulty).
//
// The score depends only on those three attributes; ID and name never
// contribute. Cuisine length counts characters, not bytes.
func Score(meal storage.Meal) (float64, error) {
	penalty, err := Penalty(meal.Difficulty)
	if err != nil {
		return 0, err
	}
	return meal.Price*float64(utf8.RuneCountInString(meal.Cuisine)) - float64(penalty), nil
}

// Gap is the normalized absolute difference between two scores.
func Gap(scoreA, scoreB float64) float64 {
	diff := scoreA - scoreB
	if diff < 0 {
		diff = -diff
	}
	return diff / gapScale
}
