package services

import (
	"errors"
	"time"
)

// Ошибки JWT токенов.
var (
	ErrMissingToken       = errors.New("no auth token")
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TTL       time.Duration
}

// TokenPayload - данные пользователя внутри токена.
type TokenPayload struct {
	UserID   string
	Username string
	Fullname string
}

// JWTClaims определяет содержимое проверенного токена.
type JWTClaims struct {
	User      TokenPayload
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken - подписанный токен и срок его действия.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
