package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые типы AI клиентов.
const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"
	AIClientGemini = "gemini"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Настройки AI (OpenRouter-совместимый endpoint по умолчанию)
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel      string        `envconfig:"AI_MODEL" default:"gpt-4"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Rate limiting: фиксированное окно по адресу клиента
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"5"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	RateLimitStore    string        `envconfig:"RATE_LIMIT_STORE" default:"memory"` // memory | redis

	// Redis (нужен только при RATE_LIMIT_STORE=redis)
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Секретное поле БЕЗ envconfig тега
	RedisPassword string

	// Демо-токены
	DemoTokenTTL time.Duration `envconfig:"DEMO_TOKEN_TTL" default:"1h"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// RequiresAPIKey сообщает, нужен ли ключ API для выбранного типа клиента.
// Ollama обычно локальный и ключа не требует.
func (c *Config) RequiresAPIKey() bool {
	return strings.ToLower(c.AIClientType) != AIClientOllama
}

// LoadConfig loads configuration from environment variables and secrets.
// Отсутствие ключа AI - жесткая ошибка конфигурации: валим процесс до
// того, как будет принят хоть один запрос.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	switch strings.ToLower(cfg.AIClientType) {
	case AIClientOpenAI, AIClientOllama, AIClientGemini:
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}

	// Загружаем секреты напрямую из окружения
	cfg.AIAPIKey = os.Getenv("AI_API_KEY")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if cfg.RequiresAPIKey() && cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is not configured for client type '%s'", cfg.AIClientType)
	}

	if cfg.RateLimitStore != "memory" && cfg.RateLimitStore != "redis" {
		return nil, fmt.Errorf("неизвестный тип хранилища rate limit: '%s'", cfg.RateLimitStore)
	}

	return &cfg, nil
}
