package services

import (
	"context"

	"noteful/internal/auth/domain/services"
)

// TokenService определяет операции с JWT.
type TokenService interface {
	Issue(ctx context.Context, payload services.TokenPayload) (*services.IssuedToken, error)

	Verify(ctx context.Context, token string) (*services.JWTClaims, error)

	Refresh(ctx context.Context, token string) (*services.IssuedToken, error)
}
