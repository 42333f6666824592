// Package config содержит конфигурацию сервиса Noteful.
package config

import (
	"context"

	"go.uber.org/zap"

	pkgconfig "noteful/pkg/config"
	"noteful/pkg/logger"
)

// ServiceName используется в логах загрузки конфигурации.
const ServiceName = "noteful"

// LogConfigLoaded - сообщение об успешной загрузке.
const LogConfigLoaded = "noteful configuration loaded"

// DefaultEnvFile - необязательный файл с переменными окружения.
const DefaultEnvFile = ".env"

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP       HTTPConfig
	Postgres   PostgresConfig
	JWT        JWTConfig
	Logging    LoggingConfig
	Shutdown   ShutdownConfig
	Redis      RedisConfig
	LoginGuard LoginGuardConfig
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("jwt_expiry", cfg.JWT.GetExpiry()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Bool("login_guard_enabled", cfg.LoginGuard.Enabled))

	return cfg, nil
}
