// Package notes содержит HTTP обработчики папок, тегов и заметок.
package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteful/internal/errs"
	"noteful/internal/gateway/app/dto"
	"noteful/internal/gateway/app/http/middleware"
	"noteful/internal/gateway/app/http/respond"
	"noteful/internal/notes/ports/api"
	"noteful/pkg/logger"
)

const (
	paramID = "id"

	ErrorInvalidRequest = "invalid request"
	MsgInvalidBody      = "Invalid JSON in request body"
)

// FolderHandler обрабатывает /api/folders.
type FolderHandler struct {
	folders api.FolderUseCase
}

// NewFolderHandler создает обработчик папок.
func NewFolderHandler(folders api.FolderUseCase) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// List возвращает папки пользователя.
func (h *FolderHandler) List(c fiber.Ctx) error {
	folders, err := h.folders.List(respond.Context(c), middleware.CurrentUser(c).UserID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewFolderList(folders))
}

// Get возвращает папку.
func (h *FolderHandler) Get(c fiber.Ctx) error {
	folder, err := h.folders.Get(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewFolderResponse(folder))
}

// Create создает папку.
func (h *FolderHandler) Create(c fiber.Ctx) error {
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	folder, err := h.folders.Create(respond.Context(c), middleware.CurrentUser(c).UserID, req.Name)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, c.Path()+"/"+folder.ID, dto.NewFolderResponse(folder))
}

// Update переименовывает папку.
func (h *FolderHandler) Update(c fiber.Ctx) error {
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	folder, err := h.folders.Update(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID), req.Name)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewFolderResponse(folder))
}

// Delete удаляет папку.
func (h *FolderHandler) Delete(c fiber.Ctx) error {
	if err := h.folders.Delete(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID)); err != nil {
		return respond.Error(c, err)
	}
	return respond.NoContent(c)
}

// bindBody разбирает JSON тело. Пустое тело оставляет out без изменений.
func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		ctx := respond.Context(c)
		logger.Log(ctx).Debug(ctx, ErrorInvalidRequest, zap.Error(err))
		return errs.Invalid("body", MsgInvalidBody)
	}
	return nil
}
