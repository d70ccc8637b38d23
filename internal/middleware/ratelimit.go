package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
)

// RateLimitStore ведет счетчики запросов в пределах фиксированного окна.
// Increment возвращает количество запросов от ключа в текущем окне,
// включая текущий запрос.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type windowEntry struct {
	count       int64
	windowStart time.Time
}

// MemoryStore - потокобезопасный счетчик окон в памяти процесса.
// Подходит для одного инстанса; для горизонтального масштабирования
// используется RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

// NewMemoryStore создает хранилище счетчиков в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.Sub(entry.windowStart) >= window {
		// Новое окно: счетчик начинается заново.
		s.entries[key] = &windowEntry{count: 1, windowStart: now}
		return 1, nil
	}
	entry.count++
	return entry.count, nil
}

// RedisStore реализует фиксированное окно поверх Redis через INCR + EXPIRE.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает хранилище счетчиков в Redis.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := "ratelimit:" + key
	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// Первое обращение в окне задает время его жизни.
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimit ограничивает число запросов с одного IP в пределах окна.
// При недоступности хранилища запрос пропускается: деградация лимитера
// не должна ронять генерацию.
func RateLimit(store RateLimitStore, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Increment(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			log.Error("Rate limit store unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if count > int64(limit) {
			log.Warn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.Int64("count", count),
				zap.Int("limit", limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, domain.ErrorResponse{
				Code:    domain.ErrCodeRateLimited,
				Message: "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
