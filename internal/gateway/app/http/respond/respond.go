// Package respond переводит ошибки приложения в HTTP ответы.
package respond

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteful/internal/errs"
	"noteful/pkg/logger"
)

// Тексты ответов.
const (
	MsgBadRequest      = "Bad Request"
	MsgUnauthorized    = "Unauthorized"
	MsgNotFound        = "Not Found"
	MsgTooManyRequests = "Too Many Requests"
	MsgInternalError   = "Internal Server Error"

	authenticationErrorName = "AuthenticationError"
	validationErrorReason   = "ValidationError"
)

// ErrorBody - тело ответа для ошибок ресурсов.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// ValidationBody - тело ответа 422 при регистрации.
type ValidationBody struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

// AuthBody - тело ответа при ошибке аутентификации.
type AuthBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type requestContextKey struct{}

// SetContext сохраняет контекст запроса для обработчиков.
func SetContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(requestContextKey{}, ctx)
}

// Context возвращает контекст запроса с логгером и идентификатором запроса.
func Context(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey{}).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// JSON отправляет body со статусом status.
func JSON(c fiber.Ctx, status int, body any) error {
	return c.Status(status).JSON(body)
}

// Created отправляет 201 с заголовком Location.
func Created(c fiber.Ctx, location string, body any) error {
	c.Location(location)
	return c.Status(http.StatusCreated).JSON(body)
}

// NoContent отправляет 204.
func NoContent(c fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// Error - единственное место, где ошибка приложения превращается в HTTP ответ.
// Подробности внутренних ошибок только логируются.
func Error(c fiber.Ctx, err error) error {
	ctx := Context(c)
	status := errs.HTTPStatus(err)

	var (
		validation *errs.ValidationError
		auth       *errs.AuthenticationError
		conflict   *errs.ConflictError
		tooMany    *errs.TooManyRequestsError
	)

	switch {
	case errors.As(err, &validation):
		if status == http.StatusUnprocessableEntity {
			return JSON(c, status, ValidationBody{
				Code:     status,
				Reason:   validationErrorReason,
				Message:  validation.Message,
				Location: validation.Field,
			})
		}
		return JSON(c, status, ErrorBody{Message: validation.Message, Status: status})

	case errors.As(err, &auth):
		message := MsgUnauthorized
		if status == http.StatusBadRequest {
			message = MsgBadRequest
		}
		return JSON(c, status, AuthBody{Name: authenticationErrorName, Message: message, Status: status})

	case status == http.StatusNotFound:
		return JSON(c, status, ErrorBody{Message: MsgNotFound, Status: status})

	case errors.As(err, &conflict):
		return JSON(c, status, ErrorBody{Message: conflict.Error(), Status: status})

	case errors.As(err, &tooMany):
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds(tooMany))
		return JSON(c, status, ErrorBody{Message: MsgTooManyRequests, Status: status})

	default:
		logger.Log(ctx).Error(ctx, "request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err))
		return JSON(c, http.StatusInternalServerError, ErrorBody{Message: MsgInternalError})
	}
}

// FiberErrorHandler обрабатывает ошибки, которые вернул сам fiber.
func FiberErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == http.StatusNotFound {
			return Error(c, errs.NotFound("route"))
		}
		if fiberErr.Code < http.StatusInternalServerError {
			return JSON(c, fiberErr.Code, ErrorBody{Message: fiberErr.Message, Status: fiberErr.Code})
		}
	}
	return Error(c, errs.Internal(err))
}

func retryAfterSeconds(err *errs.TooManyRequestsError) string {
	seconds := int(math.Ceil(err.RetryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
