// Package entities содержит сущности заметок, папок и тегов.
package entities

import (
	"errors"
	"time"
)

// Ошибки хранилища заметок.
var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrTagNotFound    = errors.New("tag not found")
	ErrDuplicateName  = errors.New("name already exists")
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	FolderID  *string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFilter задает условия выборки заметок. Пустые поля не участвуют в фильтре.
type NoteFilter struct {
	UserID     string
	SearchTerm string
	FolderID   string
	TagID      string
}

// NoteInput - тело запроса на создание или изменение заметки.
// nil означает, что поле не передано.
type NoteInput struct {
	Title    *string
	Content  *string
	FolderID *string
	Tags     *[]string
}

// NoteView - заметка с раскрытыми тегами для ответа клиенту.
type NoteView struct {
	Note *Note
	Tags []*Tag
}
