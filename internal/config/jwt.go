package config

import (
	"strconv"
	"strings"
	"time"
)

// DefaultJWTExpiry - время жизни токена по умолчанию.
const DefaultJWTExpiry = 7 * 24 * time.Hour

// JWTConfig содержит настройки токенов и хеширования паролей.
type JWTConfig struct {
	Secret     string `env:"JWT_SECRET" env-default:"change-me-in-production"`
	Expiry     string `env:"JWT_EXPIRY" env-default:"7d"`
	BCryptCost int    `env:"BCRYPT_COST" env-default:"10"`
}

// GetExpiry возвращает время жизни токена.
// Принимает формат time.ParseDuration и количество дней вида "7d".
func (c *JWTConfig) GetExpiry() time.Duration {
	raw := strings.TrimSpace(c.Expiry)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return DefaultJWTExpiry
		}
		return time.Duration(n) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(raw)
	if err != nil || duration <= 0 {
		return DefaultJWTExpiry
	}
	return duration
}
