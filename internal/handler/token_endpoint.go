package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamify-server/internal/auth"
)

// @Summary Выдать демо-токен
// @Description Возвращает неподписанный демо-токен для доступа к API
// @Tags auth
// @Produce json
// @Success 200 {object} demoTokenResponse "Демо-токен"
// @Router /api/auth/demo-token [post]
func (h *GameHandler) issueDemoToken(c *gin.Context) {
	token := auth.GenerateDemoToken(auth.DefaultUserID, h.cfg.DemoTokenTTL)

	demoTokensIssuedTotal.Inc()
	c.JSON(http.StatusOK, demoTokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.cfg.DemoTokenTTL.Seconds()),
	})
}
