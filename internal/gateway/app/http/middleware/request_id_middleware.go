// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"noteful/internal/gateway/app/http/respond"
	"noteful/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает контекст запроса с логгером base и идентификатором
// из X-Request-ID (или новым) и возвращает идентификатор клиенту.
func NewRequestIDMiddleware(base *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		if base != nil {
			ctx = logger.NewContext(ctx, base)
		}

		requestID, _ := logger.GetRequestID(ctx)
		c.Set(HeaderRequestID, requestID)
		respond.SetContext(c, ctx)

		return c.Next()
	}
}
