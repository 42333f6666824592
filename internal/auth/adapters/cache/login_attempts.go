// Package cache хранит счетчики неудачных входов в Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noteful/internal/auth/ports/repositories"
	"noteful/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodBlocked       = "blocked"
	LogMethodRecordFailure = "recordFailure"
	LogMethodReset         = "reset"

	ErrorFailedToRead   = "failed to read login attempts from redis"
	ErrorFailedToRecord = "failed to record login failure in redis"
	ErrorFailedToReset  = "failed to reset login attempts in redis"
)

const keyPrefix = "noteful:login:failures:"

// Значения по умолчанию.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// LoginAttempts считает неудачные попытки входа в окне фиксированной длины.
type LoginAttempts struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

// NewLoginAttempts создает счетчик попыток поверх клиента Redis.
func NewLoginAttempts(client redis.Cmdable, maxAttempts int, window time.Duration) repositories.LoginAttemptRepository {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &LoginAttempts{client: client, maxAttempts: maxAttempts, window: window}
}

func key(username string) string {
	return keyPrefix + username
}

// Blocked сообщает, исчерпан ли лимит попыток для имени пользователя.
func (a *LoginAttempts) Blocked(ctx context.Context, username string) (bool, time.Duration, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodBlocked))

	count, err := a.client.Get(ctx, key(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, 0, nil
		}
		log.Error(ctx, ErrorFailedToRead, zap.Error(err))
		return false, 0, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	if count < a.maxAttempts {
		return false, 0, nil
	}

	ttl, err := a.client.TTL(ctx, key(username)).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToRead, zap.Error(err))
		return true, a.window, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}
	if ttl <= 0 {
		ttl = a.window
	}

	return true, ttl, nil
}

// RecordFailure увеличивает счетчик. Окно начинается с первой неудачи.
func (a *LoginAttempts) RecordFailure(ctx context.Context, username string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRecordFailure))

	count, err := a.client.Incr(ctx, key(username)).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToRecord, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRecord, err)
	}

	if count == 1 {
		if err := a.client.Expire(ctx, key(username), a.window).Err(); err != nil {
			log.Error(ctx, ErrorFailedToRecord, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorFailedToRecord, err)
		}
	}

	log.Debug(ctx, "login failure recorded", zap.Int64("count", count))
	return nil
}

// Reset удаляет счетчик после успешного входа.
func (a *LoginAttempts) Reset(ctx context.Context, username string) error {
	if err := a.client.Del(ctx, key(username)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToReset, zap.String("method", LogMethodReset), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToReset, err)
	}
	return nil
}
