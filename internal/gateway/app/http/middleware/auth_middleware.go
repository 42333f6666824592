package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteful/internal/auth/domain/services"
	"noteful/internal/auth/ports/api"
	"noteful/internal/gateway/app/http/respond"
	"noteful/pkg/logger"
)

const (
	bearerPrefix = "Bearer "

	LogAuthMiddleware = "auth middleware"
	LogTokenRejected  = "token rejected"
)

type userKey struct{}

// BearerToken возвращает токен из заголовка Authorization или пустую строку.
func BearerToken(c fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// NewAuthMiddleware проверяет bearer-токен и кладет данные пользователя в контекст запроса.
// Без токена запрос получает 400, с плохим или просроченным токеном 401.
func NewAuthMiddleware(authUseCase api.AuthUseCase) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := respond.Context(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		payload, err := authUseCase.Authenticate(requestCtx, BearerToken(c))
		if err != nil {
			log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
			return respond.Error(c, err)
		}

		c.Locals(userKey{}, payload)
		return c.Next()
	}
}

// CurrentUser возвращает пользователя, прошедшего NewAuthMiddleware.
func CurrentUser(c fiber.Ctx) *services.TokenPayload {
	payload, _ := c.Locals(userKey{}).(*services.TokenPayload)
	return payload
}
