// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteful/internal/auth/ports/api"
	"noteful/internal/errs"
	"noteful/internal/gateway/app/dto"
	"noteful/internal/gateway/app/http/middleware"
	"noteful/internal/gateway/app/http/respond"
	"noteful/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerRefresh  = "auth handler: refresh" // #nosec G101 - not a credential

	ErrorInvalidRequest = "invalid request"
	MsgInvalidBody      = "Invalid JSON in request body"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := respond.Context(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	fields := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&fields); err != nil {
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return respond.Error(c, errs.Invalid("body", MsgInvalidBody))
		}
	}

	user, err := h.authUseCase.Register(requestCtx, fields)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.Created(c, c.Path()+"/"+user.ID, dto.NewUserResponse(user))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := respond.Context(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return respond.Error(c, errs.Unauthenticated(errs.AuthMissing, err))
		}
	}

	token, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewTokenResponse(token))
}

// Refresh выдает новый токен взамен действующего.
func (h *Handler) Refresh(c fiber.Ctx) error {
	requestCtx := respond.Context(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerRefresh)

	token, err := h.authUseCase.Refresh(requestCtx, middleware.BearerToken(c))
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewTokenResponse(token))
}
