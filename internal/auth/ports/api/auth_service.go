package api

import (
	"context"

	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/domain/services"
)

// AuthUseCase определяет операции регистрации и аутентификации.
type AuthUseCase interface {
	// Register проверяет поля JSON-тела и создает пользователя.
	Register(ctx context.Context, fields map[string]any) (*entities.User, error)

	Login(ctx context.Context, username, password string) (*services.IssuedToken, error)

	Refresh(ctx context.Context, token string) (*services.IssuedToken, error)

	// Authenticate проверяет bearer-токен и возвращает данные пользователя.
	Authenticate(ctx context.Context, token string) (*services.TokenPayload, error)
}
