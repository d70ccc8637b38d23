package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
	"gamify-server/internal/middleware"
)

// validateUserInput повторяет binding-проверки для вложенной структуры:
// Gin не валидирует указатель, пришедший как nil, поэтому границы
// проверяются вручную после разбора конверта.
func validateUserInput(input *userInputPayload) []string {
	var details []string
	if input == nil {
		return []string{"userInput is required for action \"start\""}
	}
	if l := len(input.GoalDescription); l < domain.MinGoalLength {
		details = append(details, "goal_description must be at least 10 characters")
	} else if l > domain.MaxGoalLength {
		details = append(details, "goal_description must be less than 500 characters")
	}
	if l := len(input.InterestTheme); l < domain.MinInterestLength {
		details = append(details, "interest_theme must be at least 3 characters")
	} else if l > domain.MaxInterestLength {
		details = append(details, "interest_theme must be less than 100 characters")
	}
	return details
}

// @Summary Шаг дерева решений
// @Description Начинает сессию подбора игры или фиксирует выбор пользователя
// @Tags games
// @Accept json
// @Produce json
// @Param request body decisionTreeRequest true "Действие и состояние сессии"
// @Success 200 {object} decisionTreeResponse "Обновленное состояние"
// @Failure 400 {object} domain.ErrorResponse "Неверные данные запроса"
// @Failure 401 {object} domain.ErrorResponse "Неверный токен"
// @Failure 429 {object} domain.ErrorResponse "Превышен лимит запросов"
// @Router /api/decision-tree [post]
func (h *GameHandler) decisionTree(c *gin.Context) {
	var req decisionTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	userID := middleware.UserIDFromContext(c)

	switch req.Action {
	case actionStart:
		if details := validateUserInput(req.UserInput); len(details) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
				Code:    domain.ErrCodeValidation,
				Message: "Invalid request data",
				Details: details,
			})
			return
		}

		input := domain.UserInput{
			GoalDescription: req.UserInput.GoalDescription,
			InterestTheme:   req.UserInput.InterestTheme,
		}
		state, err := h.treeGenerator.StartGeneration(c.Request.Context(), input, userID)
		if err != nil {
			h.logger.Error("Decision tree start failed", zap.String("user_id", userID), zap.Error(err))
			handleServiceError(c, err)
			return
		}

		decisionStepsTotal.WithLabelValues(actionStart).Inc()
		c.JSON(http.StatusOK, decisionTreeResponse{State: state})

	case actionMakeDecision:
		if req.State == nil || req.SelectedOptionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
				Code:    domain.ErrCodeBadRequest,
				Message: "Missing state or selectedOptionId",
			})
			return
		}

		state, err := h.treeGenerator.MakeDecision(c.Request.Context(), req.State, req.SelectedOptionID, userID)
		if err != nil {
			h.logger.Error("Decision tree step failed",
				zap.String("user_id", userID),
				zap.Int("current_level", req.State.CurrentLevel),
				zap.Error(err))
			handleServiceError(c, err)
			return
		}

		decisionStepsTotal.WithLabelValues(actionMakeDecision).Inc()
		if state.IsComplete {
			gamesGeneratedTotal.WithLabelValues("decision_tree").Inc()
		}
		c.JSON(http.StatusOK, decisionTreeResponse{State: state})

	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
			Code:    domain.ErrCodeBadRequest,
			Message: `Invalid action. Use "start" or "make_decision"`,
		})
	}
}
