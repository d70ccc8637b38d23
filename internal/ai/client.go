package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"gamify-server/internal/config"
	"gamify-server/internal/domain"
)

// AIClient интерфейс для взаимодействия с AI API.
// Контракт намеренно минимальный: один промт - один текстовый ответ.
// Без повторных попыток и без стриминга; пустой ответ - ошибка.
type AIClient interface {
	// GenerateText генерирует текст по промту пользователя.
	// temperature передается в API как есть.
	GenerateText(ctx context.Context, userID string, prompt string, temperature float32) (string, error)
}

// --- OpenAI Client Implementation ---

// openAIClient реализует AIClient с использованием go-openai.
// Работает с любым OpenAI-совместимым endpoint (OpenRouter и т.п.).
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

// GenerateText отправляет один chat completion запрос и возвращает текст ответа.
func (c *openAIClient) GenerateText(ctx context.Context, userID string, prompt string, temperature float32) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: промт пуст", domain.ErrAIGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{
			Role:    openaigo.ChatMessageRoleUser,
			Content: prompt,
		},
	}

	startTime := time.Now()
	c.logger.Debug("Отправка запроса к AI",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
		zap.String("user_id", userID),
	)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openaigo.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
		},
	)

	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("Ошибка от AI API",
			zap.Duration("duration", duration),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		aiRequestsTotal.WithLabelValues(c.model, "error", userID).Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("AI API вернул пустой ответ",
			zap.Duration("duration", duration),
			zap.String("user_id", userID),
		)
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", userID).Inc()
		return "", fmt.Errorf("%w: %w", domain.ErrAIGenerationFailed, domain.ErrEmptyAIResponse)
	}

	aiRequestsTotal.WithLabelValues(c.model, "success", userID).Inc()
	aiRequestDuration.WithLabelValues(c.model, userID).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content
	c.logger.Debug("Ответ от AI API получен",
		zap.Duration("duration", duration),
		zap.Int("response_chars", len(generatedText)),
		zap.String("user_id", userID),
	)

	if resp.Usage.TotalTokens > 0 {
		observeUsage(c.model, userID, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	} else {
		// Не все OpenAI-совместимые шлюзы возвращают блок usage.
		// Оцениваем токены через tiktoken, чтобы метрики не теряли данные.
		promptTokens, completionTokens := estimateTokens(c.model, prompt, generatedText)
		observeUsage(c.model, userID, promptTokens, completionTokens, promptTokens+completionTokens)
	}

	return generatedText, nil
}

// estimateTokens дает приблизительный подсчет токенов, когда API не вернул usage.
func estimateTokens(model, prompt, completion string) (int, int) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Неизвестная модель - считаем универсальной кодировкой
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, 0
		}
	}
	return len(tke.Encode(prompt, nil, nil)), len(tke.Encode(completion, nil, nil))
}

// --- Factory Function ---

// NewAIClient создает клиент для взаимодействия с AI в зависимости от конфигурации.
func NewAIClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case config.AIClientOpenAI:
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{
			Timeout: cfg.AITimeout,
		}
		client := openaigo.NewClientWithConfig(openaiConfig)
		logger.Info("OpenAI клиент создан",
			zap.String("base_url", cfg.AIBaseURL),
			zap.String("model", cfg.AIModel),
			zap.Duration("timeout", cfg.AITimeout),
		)
		return &openAIClient{
			client: client,
			model:  cfg.AIModel,
			logger: logger.Named("OpenAIClient"),
		}, nil
	case config.AIClientOllama:
		return newOllamaClient(cfg, logger)
	case config.AIClientGemini:
		return newGeminiClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}
}
