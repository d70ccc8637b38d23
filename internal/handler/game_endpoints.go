package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
	"gamify-server/internal/middleware"
)

// @Summary Сгенерировать игру за один проход
// @Description Превращает цель и интерес пользователя в игровую систему
// @Tags games
// @Accept json
// @Produce json
// @Param request body generateGameRequest true "Цель и интерес"
// @Success 200 {object} generateGameResponse "Сгенерированная игра"
// @Failure 400 {object} domain.ErrorResponse "Неверные данные запроса"
// @Failure 401 {object} domain.ErrorResponse "Неверный токен"
// @Failure 429 {object} domain.ErrorResponse "Превышен лимит запросов"
// @Router /api/generate-game [post]
func (h *GameHandler) generateGame(c *gin.Context) {
	var req generateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	userID := middleware.UserIDFromContext(c)
	input := domain.UserInput{
		GoalDescription: req.GoalDescription,
		InterestTheme:   req.InterestTheme,
	}

	game, err := h.gameGenerator.GenerateGame(c.Request.Context(), input, userID)
	if err != nil {
		h.logger.Error("Game generation failed", zap.String("user_id", userID), zap.Error(err))
		handleServiceError(c, err)
		return
	}

	gamesGeneratedTotal.WithLabelValues("single_shot").Inc()
	c.JSON(http.StatusOK, generateGameResponse{Game: game})
}
