package notes

import (
	"github.com/gofiber/fiber/v3"

	"noteful/internal/gateway/app/dto"
	"noteful/internal/gateway/app/http/middleware"
	"noteful/internal/gateway/app/http/respond"
	"noteful/internal/notes/domain/entities"
	"noteful/internal/notes/ports/api"
)

// Параметры выборки заметок.
const (
	QuerySearchTerm = "searchTerm"
	QueryFolderID   = "folderId"
	QueryTagID      = "tagId"
)

// NoteHandler обрабатывает /api/notes.
type NoteHandler struct {
	notes api.NoteUseCase
}

// NewNoteHandler создает обработчик заметок.
func NewNoteHandler(notes api.NoteUseCase) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// List возвращает заметки по searchTerm, folderId и tagId.
func (h *NoteHandler) List(c fiber.Ctx) error {
	views, err := h.notes.List(respond.Context(c), entities.NoteFilter{
		UserID:     middleware.CurrentUser(c).UserID,
		SearchTerm: c.Query(QuerySearchTerm),
		FolderID:   c.Query(QueryFolderID),
		TagID:      c.Query(QueryTagID),
	})
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewNoteList(views))
}

// Get возвращает заметку.
func (h *NoteHandler) Get(c fiber.Ctx) error {
	view, err := h.notes.Get(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewNoteResponse(view))
}

// Create создает заметку.
func (h *NoteHandler) Create(c fiber.Ctx) error {
	var req dto.NoteRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	view, err := h.notes.Create(respond.Context(c), middleware.CurrentUser(c).UserID, req.Input())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, c.Path()+"/"+view.Note.ID, dto.NewNoteResponse(view))
}

// Update изменяет заметку.
func (h *NoteHandler) Update(c fiber.Ctx) error {
	var req dto.NoteRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	view, err := h.notes.Update(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID), req.Input())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewNoteResponse(view))
}

// Delete удаляет заметку.
func (h *NoteHandler) Delete(c fiber.Ctx) error {
	if err := h.notes.Delete(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID)); err != nil {
		return respond.Error(c, err)
	}
	return respond.NoContent(c)
}
