package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamify-server/internal/middleware"
)

// @Summary Экспортировать игру в PDF
// @Description Рендерит игровой лист для печати
// @Tags games
// @Accept json
// @Produce application/pdf
// @Param request body exportGameRequest true "Игра для экспорта"
// @Success 200 {file} binary "PDF-документ"
// @Failure 400 {object} domain.ErrorResponse "Неверные данные запроса"
// @Failure 401 {object} domain.ErrorResponse "Неверный токен"
// @Router /api/games/export [post]
func (h *GameHandler) exportGame(c *gin.Context) {
	var req exportGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	// Рендерим в буфер: при ошибке рендера клиент получит JSON,
	// а не обрезанный PDF.
	var buf bytes.Buffer
	if err := h.exporter.WriteGame(&buf, req.Game); err != nil {
		h.logger.Error("PDF export failed",
			zap.String("user_id", middleware.UserIDFromContext(c)),
			zap.Error(err))
		handleServiceError(c, err)
		return
	}

	exportsTotal.Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "game-sheet.pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
