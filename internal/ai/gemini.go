package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"gamify-server/internal/config"
	"gamify-server/internal/domain"
)

// geminiClient реализует AIClient поверх Google Generative AI API.
type geminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// newGeminiClient создает новый клиент Gemini.
func newGeminiClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AIAPIKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Gemini клиента: %w", err)
	}

	logger.Info("Gemini клиент создан", zap.String("model", cfg.AIModel))

	return &geminiClient{
		client: client,
		model:  cfg.AIModel,
		logger: logger.Named("GeminiClient"),
	}, nil
}

// GenerateText генерирует текст с использованием Gemini.
func (c *geminiClient) GenerateText(ctx context.Context, userID string, prompt string, temperature float32) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: промт пуст", domain.ErrAIGenerationFailed)
	}

	// GenerativeModel создается на каждый вызов: установка температуры
	// мутирует модель, а клиент используется из разных горутин.
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)

	startTime := time.Now()
	c.logger.Debug("Отправка запроса к Gemini",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
		zap.String("user_id", userID),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("Ошибка от Gemini API",
			zap.Duration("duration", duration),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrAIGenerationFailed, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.logger.Warn("Gemini API вернул пустой ответ",
			zap.Duration("duration", duration),
			zap.String("user_id", userID),
		)
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", userID).Inc()
		return "", fmt.Errorf("%w: %w", domain.ErrAIGenerationFailed, domain.ErrEmptyAIResponse)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || string(text) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", userID).Inc()
		return "", fmt.Errorf("%w: %w", domain.ErrAIGenerationFailed, domain.ErrEmptyAIResponse)
	}

	aiRequestsTotal.WithLabelValues(c.model, "success", userID).Inc()
	aiRequestDuration.WithLabelValues(c.model, userID).Observe(duration.Seconds())

	if resp.UsageMetadata != nil {
		observeUsage(c.model, userID,
			int(resp.UsageMetadata.PromptTokenCount),
			int(resp.UsageMetadata.CandidatesTokenCount),
			int(resp.UsageMetadata.TotalTokenCount),
		)
	}

	return string(text), nil
}
