// Package http содержит компоненты для HTTP сервера.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authapi "noteful/internal/auth/ports/api"
	"noteful/internal/errs"
	"noteful/internal/gateway/app/http/auth"
	"noteful/internal/gateway/app/http/middleware"
	"noteful/internal/gateway/app/http/notes"
	"noteful/internal/gateway/app/http/respond"
	notesapi "noteful/internal/notes/ports/api"
	"noteful/pkg/logger"
)

// Pinger проверяет доступность хранилища для /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services - сценарии, которые обслуживает HTTP API.
type Services struct {
	Auth    authapi.AuthUseCase
	Folders notesapi.FolderUseCase
	Tags    notesapi.TagUseCase
	Notes   notesapi.NoteUseCase
	Store   Pinger
}

// NewApp создает fiber приложение с обработчиком ошибок API.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = respond.FiberErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, log *logger.Logger, svc Services) {
	authHandler := auth.NewHandler(svc.Auth)
	folderHandler := notes.NewFolderHandler(svc.Folders)
	tagHandler := notes.NewTagHandler(svc.Tags)
	noteHandler := notes.NewNoteHandler(svc.Notes)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler(svc.Store))

	api := app.Group("/api")

	// Публичные маршруты.
	api.Post("/users", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	requireAuth := middleware.NewAuthMiddleware(svc.Auth)

	folders := api.Group("/folders", requireAuth)
	folders.Get("/", folderHandler.List)
	folders.Post("/", folderHandler.Create)
	folders.Get("/:id", folderHandler.Get)
	folders.Put("/:id", folderHandler.Update)
	folders.Delete("/:id", folderHandler.Delete)

	tags := api.Group("/tags", requireAuth)
	tags.Get("/", tagHandler.List)
	tags.Post("/", tagHandler.Create)
	tags.Get("/:id", tagHandler.Get)
	tags.Put("/:id", tagHandler.Update)
	tags.Delete("/:id", tagHandler.Delete)

	notesGroup := api.Group("/notes", requireAuth)
	notesGroup.Get("/", noteHandler.List)
	notesGroup.Post("/", noteHandler.Create)
	notesGroup.Get("/:id", noteHandler.Get)
	notesGroup.Put("/:id", noteHandler.Update)
	notesGroup.Delete("/:id", noteHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return respond.Error(c, errs.NotFound("route"))
	})
}

func healthHandler(store Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := respond.Context(c)
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				logger.Log(ctx).Warn(ctx, "health check failed", zap.Error(err))
				return respond.JSON(c, fiber.StatusServiceUnavailable, fiber.Map{"status": "unavailable"})
			}
		}
		return respond.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	}
}
