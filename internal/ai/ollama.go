package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"gamify-server/internal/config"
	"gamify-server/internal/domain"
)

// ollamaClient реализует AIClient с использованием ollama/api.
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// newOllamaClient создает новый клиент для взаимодействия с Ollama.
func newOllamaClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	httpClient := &http.Client{
		Timeout: cfg.AITimeout,
	}

	// api.NewClient требует URL без суффикса /v1
	ollamaBaseURL := strings.TrimSuffix(cfg.AIBaseURL, "/v1")
	ollamaBaseURL = strings.TrimSuffix(ollamaBaseURL, "/")

	parsedURL, err := url.Parse(ollamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", ollamaBaseURL, err)
	}

	client := api.NewClient(parsedURL, httpClient)

	logger.Info("Ollama клиент создан",
		zap.String("base_url", ollamaBaseURL),
		zap.String("model", cfg.AIModel),
		zap.Duration("timeout", cfg.AITimeout),
	)

	return &ollamaClient{
		client:  client,
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

// GenerateText генерирует текст с использованием Ollama.
func (c *ollamaClient) GenerateText(ctx context.Context, userID string, prompt string, temperature float32) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: промт пуст", domain.ErrAIGenerationFailed)
	}

	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: func(b bool) *bool { return &b }(false),
		Options: map[string]interface{}{
			"temperature": float64(temperature),
		},
	}

	// Контекст с таймаутом, специфичным для этого запроса
	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.logger.Debug("Отправка запроса к Ollama",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
		zap.String("user_id", userID),
	)

	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r // Сохраняем последний (полный) ответ
		return nil
	})

	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("Таймаут запроса к Ollama API",
				zap.Duration("timeout", c.timeout),
				zap.Duration("duration", duration),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			c.logger.Error("Ошибка от Ollama API",
				zap.Duration("duration", duration),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrAIGenerationFailed, err)
	}

	if resp.Message.Content == "" {
		c.logger.Warn("Ollama API вернул пустой ответ",
			zap.Duration("duration", duration),
			zap.String("user_id", userID),
		)
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", userID).Inc()
		return "", fmt.Errorf("%w: %w", domain.ErrAIGenerationFailed, domain.ErrEmptyAIResponse)
	}

	aiRequestsTotal.WithLabelValues(c.model, "success", userID).Inc()
	aiRequestDuration.WithLabelValues(c.model, userID).Observe(duration.Seconds())

	// Ollama возвращает счетчики токенов в самом ответе
	observeUsage(c.model, userID, resp.PromptEvalCount, resp.EvalCount, resp.PromptEvalCount+resp.EvalCount)

	return resp.Message.Content, nil
}
