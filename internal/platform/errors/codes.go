// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Meal errors
	CodeMealNameEmpty         Code = "MEAL_NAME_EMPTY"
	CodeMealCuisineEmpty      Code = "MEAL_CUISINE_EMPTY"
	CodeMealInvalidPrice      Code = "MEAL_INVALID_PRICE"
	CodeMealInvalidDifficulty Code = "MEAL_INVALID_DIFFICULTY"
	CodeMealNotFound          Code = "MEAL_NOT_FOUND"
	CodeMealAlreadyExists     Code = "MEAL_ALREADY_EXISTS"
	CodeMealAlreadyDeleted    Code = "MEAL_ALREADY_DELETED"

	// Stats errors
	CodeStatsInvalidOutcome Code = "STATS_INVALID_OUTCOME"

	// Leaderboard errors
	CodeLeaderboardInvalidOrder Code = "LEADERBOARD_INVALID_ORDER"

	// Battle errors
	CodeBattleRosterFull             Code = "BATTLE_ROSTER_FULL"
	CodeBattleInsufficientCombatants Code = "BATTLE_INSUFFICIENT_COMBATANTS"

	// Random source errors
	CodeRandomUnavailable Code = "RANDOM_UNAVAILABLE"
	CodeRandomOutOfRange  Code = "RANDOM_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeMealNameEmpty,
		CodeMealCuisineEmpty,
		CodeMealInvalidPrice,
		CodeMealInvalidDifficulty,
		CodeStatsInvalidOutcome,
		CodeLeaderboardInvalidOrder:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeMealAlreadyDeleted,
		CodeBattleRosterFull,
		CodeBattleInsufficientCombatants:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeMealNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeMealAlreadyExists:
		return codes.AlreadyExists

	// Unavailable - transient upstream failure, safe to retry
	case CodeRandomUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}

// Transient reports whether a caller may retry the failed operation.
func (c Code) Transient() bool {
	return c.GRPCCode() == codes.Unavailable
}
