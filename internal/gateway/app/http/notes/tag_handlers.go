package notes

import (
	"github.com/gofiber/fiber/v3"

	"noteful/internal/gateway/app/dto"
	"noteful/internal/gateway/app/http/middleware"
	"noteful/internal/gateway/app/http/respond"
	"noteful/internal/notes/ports/api"
)

// TagHandler обрабатывает /api/tags.
type TagHandler struct {
	tags api.TagUseCase
}

// NewTagHandler создает обработчик тегов.
func NewTagHandler(tags api.TagUseCase) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(c fiber.Ctx) error {
	tags, err := h.tags.List(respond.Context(c), middleware.CurrentUser(c).UserID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewTagList(tags))
}

func (h *TagHandler) Get(c fiber.Ctx) error {
	tag, err := h.tags.Get(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewTagResponse(tag))
}

func (h *TagHandler) Create(c fiber.Ctx) error {
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	tag, err := h.tags.Create(respond.Context(c), middleware.CurrentUser(c).UserID, req.Name)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, c.Path()+"/"+tag.ID, dto.NewTagResponse(tag))
}

func (h *TagHandler) Update(c fiber.Ctx) error {
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	tag, err := h.tags.Update(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID), req.Name)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.JSON(c, fiber.StatusOK, dto.NewTagResponse(tag))
}

// Delete удаляет тег и убирает его из заметок.
func (h *TagHandler) Delete(c fiber.Ctx) error {
	if err := h.tags.Delete(respond.Context(c), middleware.CurrentUser(c).UserID, c.Params(paramID)); err != nil {
		return respond.Error(c, err)
	}
	return respond.NoContent(c)
}
