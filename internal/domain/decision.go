package domain

// Границы валидации пользовательского ввода.
const (
	MinGoalLength     = 10
	MaxGoalLength     = 500
	MinInterestLength = 3
	MaxInterestLength = 100
)

// Дерево решений всегда состоит из четырех уровней.
const MaxDecisionLevels = 4

// UserInput - исходный ввод пользователя. Неизменяем после отправки,
// валидируется на границе API.
type UserInput struct {
	GoalDescription string `json:"goal_description"`
	InterestTheme   string `json:"interest_theme"`
}

// DecisionOption - один из вариантов выбора на уровне дерева.
// По соглашению модель генерирует два варианта на уровень.
type DecisionOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
}

// DecisionLevel - один шаг дерева решений. SelectedOption устанавливается
// ровно один раз, когда пользователь делает выбор.
type DecisionLevel struct {
	Level          int              `json:"level"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Options        []DecisionOption `json:"options"`
	SelectedOption string           `json:"selected_option,omitempty"`
}

// GameGenerationState - полное состояние сессии дерева решений.
// Сервер его не хранит: состояние целиком уходит клиенту в ответе
// и возвращается с каждым следующим запросом.
//
// Инварианты: len(Decisions) == CurrentLevel до завершения;
// FinalGame != nil тогда и только тогда, когда IsComplete == true.
type GameGenerationState struct {
	UserInput    UserInput       `json:"user_input"`
	Decisions    []DecisionLevel `json:"decisions"`
	CurrentLevel int             `json:"current_level"`
	IsComplete   bool            `json:"is_complete"`
	FinalGame    *GamifiedGame   `json:"final_game,omitempty"`
}
