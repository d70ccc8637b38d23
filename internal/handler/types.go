package handler

import (
	"gamify-server/internal/domain"
)

// Действия эндпоинта дерева решений.
const (
	actionStart        = "start"
	actionMakeDecision = "make_decision"
)

type generateGameRequest struct {
	GoalDescription string `json:"goal_description" binding:"required,min=10,max=500"`
	InterestTheme   string `json:"interest_theme" binding:"required,min=3,max=100"`
}

type generateGameResponse struct {
	Game *domain.GamifiedGame `json:"game"`
}

// decisionTreeRequest - конверт с диспетчеризацией по action.
// Верхние ключи идут в camelCase, как их шлет клиент; вложенные
// структуры состояния - в snake_case.
type decisionTreeRequest struct {
	Action           string                      `json:"action" binding:"required"`
	UserInput        *userInputPayload           `json:"userInput,omitempty"`
	State            *domain.GameGenerationState `json:"state,omitempty"`
	SelectedOptionID string                      `json:"selectedOptionId,omitempty"`
}

// userInputPayload дублирует domain.UserInput ради binding-тегов:
// доменная структура не знает о валидации HTTP-слоя.
type userInputPayload struct {
	GoalDescription string `json:"goal_description" binding:"required,min=10,max=500"`
	InterestTheme   string `json:"interest_theme" binding:"required,min=3,max=100"`
}

type decisionTreeResponse struct {
	State *domain.GameGenerationState `json:"state"`
}

type exportGameRequest struct {
	Game *domain.GamifiedGame `json:"game" binding:"required"`
}

type demoTokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}
