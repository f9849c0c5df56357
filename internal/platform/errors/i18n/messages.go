package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeMealNameEmpty                = "MEAL_NAME_EMPTY"
	CodeMealCuisineEmpty             = "MEAL_CUISINE_EMPTY"
	CodeMealInvalidPrice             = "MEAL_INVALID_PRICE"
	CodeMealInvalidDifficulty        = "MEAL_INVALID_DIFFICULTY"
	CodeMealNotFound                 = "MEAL_NOT_FOUND"
	CodeMealAlreadyExists            = "MEAL_ALREADY_EXISTS"
	CodeMealAlreadyDeleted           = "MEAL_ALREADY_DELETED"
	CodeStatsInvalidOutcome          = "STATS_INVALID_OUTCOME"
	CodeLeaderboardInvalidOrder      = "LEADERBOARD_INVALID_ORDER"
	CodeBattleRosterFull             = "BATTLE_ROSTER_FULL"
	CodeBattleInsufficientCombatants = "BATTLE_INSUFFICIENT_COMBATANTS"
	CodeRandomUnavailable            = "RANDOM_UNAVAILABLE"
	CodeRandomOutOfRange             = "RANDOM_OUT_OF_RANGE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeMealNameEmpty:         "Meal name cannot be empty",
		CodeMealCuisineEmpty:      "Cuisine cannot be empty",
		CodeMealInvalidPrice:      "Invalid price: {{.Price}}. Price must be a positive number",
		CodeMealInvalidDifficulty: "Invalid difficulty level: {{.Difficulty}}. Must be 'LOW', 'MED', or 'HIGH'",
		CodeMealNotFound:          "Meal {{.Meal}} not found",
		CodeMealAlreadyExists:     "Meal with name '{{.Name}}' already exists",
		CodeMealAlreadyDeleted:    "Meal {{.Meal}} has been deleted",

		CodeStatsInvalidOutcome:     "Invalid result: {{.Outcome}}. Expected 'win' or 'loss'",
		CodeLeaderboardInvalidOrder: "Invalid sort_by parameter: {{.OrderBy}}",

		CodeBattleRosterFull:             "Combatant list is full, cannot add more combatants",
		CodeBattleInsufficientCombatants: "Two combatants must be prepped for a battle",

		CodeRandomUnavailable: "Random number service is unavailable, try again",
		CodeRandomOutOfRange:  "Random number service returned an invalid value",
	},
}

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeMealNameEmpty:         "O nome da refeição não pode ser vazio",
		CodeMealCuisineEmpty:      "A culinária não pode ser vazia",
		CodeMealInvalidPrice:      "Preço inválido: {{.Price}}. O preço deve ser positivo",
		CodeMealInvalidDifficulty: "Dificuldade inválida: {{.Difficulty}}. Use 'LOW', 'MED' ou 'HIGH'",
		CodeMealNotFound:          "Refeição {{.Meal}} não encontrada",
		CodeMealAlreadyExists:     "Já existe uma refeição chamada '{{.Name}}'",
		CodeMealAlreadyDeleted:    "A refeição {{.Meal}} foi removida",

		CodeStatsInvalidOutcome:     "Resultado inválido: {{.Outcome}}. Use 'win' ou 'loss'",
		CodeLeaderboardInvalidOrder: "Ordenação inválida: {{.OrderBy}}",

		CodeBattleRosterFull:             "A lista de combatentes está cheia",
		CodeBattleInsufficientCombatants: "São necessários dois combatentes para a batalha",

		CodeRandomUnavailable: "Serviço de números aleatórios indisponível, tente novamente",
		CodeRandomOutOfRange:  "Serviço de números aleatórios retornou um valor inválido",
	},
}
