package config

import (
	"time"

	"noteful/pkg/db/redis"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" env-default:"localhost"`
	Port     int           `env:"REDIS_PORT" env-default:"6379"`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT" env-default:"5s"`
}

// ClientConfig переводит настройки в конфигурацию клиента.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}

// LoginGuardConfig настраивает ограничение неудачных попыток входа.
type LoginGuardConfig struct {
	Enabled     bool          `env:"LOGIN_GUARD_ENABLED" env-default:"false"`
	MaxAttempts int           `env:"LOGIN_GUARD_MAX_ATTEMPTS" env-default:"5"`
	Window      time.Duration `env:"LOGIN_GUARD_WINDOW" env-default:"15m"`
}
