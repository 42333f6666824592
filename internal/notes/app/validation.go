// Package app содержит сценарии работы с папками, тегами и заметками.
package app

import (
	"strings"

	"noteful/internal/errs"
	"noteful/internal/notes/domain/entities"
)

// Сообщения об ошибках проверки входных данных.
const (
	MsgMissingName     = "Missing `name` in request body"
	MsgMissingTitle    = "Missing `title` in request body"
	MsgInvalidID       = "Invalid id"
	MsgInvalidFolderID = "The `folderId` is not valid"
	MsgInvalidTagID    = "The `tagId` is not valid"
	MsgInvalidTags     = "The `tags` array contains an invalid `id`"
)

const (
	fieldID       = "id"
	fieldName     = "name"
	fieldTitle    = "title"
	fieldFolderID = "folderId"
	fieldTagID    = "tagId"
)

// ValidateID проверяет формат идентификатора до обращения к хранилищу.
func ValidateID(raw string) (string, error) {
	id, ok := entities.CanonicalID(raw)
	if !ok {
		return "", errs.Invalid(fieldID, MsgInvalidID)
	}
	return id, nil
}

// ValidateName проверяет имя папки или тега и возвращает его без пробелов по краям.
func ValidateName(name *string) (string, error) {
	return required(name, fieldName, MsgMissingName)
}

// ValidateTitle проверяет заголовок заметки.
func ValidateTitle(title *string) (string, error) {
	return required(title, fieldTitle, MsgMissingTitle)
}

func required(value *string, field, message string) (string, error) {
	if value == nil {
		return "", errs.Invalid(field, message)
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", errs.Invalid(field, message)
	}
	return trimmed, nil
}

// ValidateFilter проверяет идентификаторы в параметрах выборки и приводит их к канонической записи.
func ValidateFilter(filter entities.NoteFilter) (entities.NoteFilter, error) {
	if filter.FolderID != "" {
		id, ok := entities.CanonicalID(filter.FolderID)
		if !ok {
			return filter, errs.Invalid(fieldFolderID, MsgInvalidFolderID)
		}
		filter.FolderID = id
	}
	if filter.TagID != "" {
		id, ok := entities.CanonicalID(filter.TagID)
		if !ok {
			return filter, errs.Invalid(fieldTagID, MsgInvalidTagID)
		}
		filter.TagID = id
	}
	return filter, nil
}
