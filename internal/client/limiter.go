package client

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// пауза по умолчанию, когда шлюз вернул 429 без заголовка Retry-After
const defaultRetryAfter = time.Minute

// RateLimiter - клиентское ограничение исходящих запросов к внешнему
// шлюзу. Без ограничений, пока шлюз сам не попросил притормозить.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
}

// Wait - блокируется до разрешения на следующий запрос
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// Update - выставление лимита, присланного шлюзом
func (rl *RateLimiter) Update(limit rate.Limit, burst int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiter.SetLimit(limit)
	rl.limiter.SetBurst(burst)
}

// BlockFor - полная остановка исходящих запросов на duration.
// После паузы лимит снимается, а не восстанавливается: актуальное
// значение шлюз пришлёт со следующим ответом.
func (rl *RateLimiter) BlockFor(duration time.Duration) {
	rl.mu.Lock()
	rl.limiter.SetLimit(0)
	rl.mu.Unlock()

	time.AfterFunc(duration, func() {
		rl.mu.Lock()
		rl.limiter.SetLimit(rate.Inf)
		rl.mu.Unlock()
	})
}

// ParseRetryAfter - разбор заголовка Retry-After (секунды или HTTP-дата)
func ParseRetryAfter(headers http.Header) time.Duration {
	value := headers.Get("Retry-After")
	if value == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		return time.Until(at)
	}
	return defaultRetryAfter
}
