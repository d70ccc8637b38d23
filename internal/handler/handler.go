// Package handler - HTTP-слой сервиса: маршруты, валидация запросов и
// трансляция доменных ошибок в ответы API.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamify-server/internal/config"
	"gamify-server/internal/export"
	"gamify-server/internal/middleware"
	"gamify-server/internal/service"
)

type GameHandler struct {
	gameGenerator *service.GameGenerator
	treeGenerator *service.DecisionTreeGenerator
	exporter      *export.PDFExporter
	cfg           *config.Config
	logger        *zap.Logger
}

func NewGameHandler(
	gameGenerator *service.GameGenerator,
	treeGenerator *service.DecisionTreeGenerator,
	exporter *export.PDFExporter,
	cfg *config.Config,
	logger *zap.Logger,
) *GameHandler {
	return &GameHandler{
		gameGenerator: gameGenerator,
		treeGenerator: treeGenerator,
		exporter:      exporter,
		cfg:           cfg,
		logger:        logger.Named("GameHandler"),
	}
}

// RegisterRoutes вешает маршруты API. Лимитер передается снаружи:
// его хранилище (память или Redis) выбирается при старте сервиса.
func (h *GameHandler) RegisterRoutes(router *gin.Engine, rateLimiter gin.HandlerFunc) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/demo-token", h.issueDemoToken)
	}

	protected := router.Group("/api")
	protected.Use(rateLimiter, middleware.RequireDemoToken(h.logger))
	{
		protected.POST("/generate-game", h.generateGame)
		protected.POST("/decision-tree", h.decisionTree)
		protected.POST("/games/export", h.exportGame)
	}
}
