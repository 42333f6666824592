package dto

import (
	"time"

	"noteful/internal/notes/domain/entities"
)

// NameRequest - тело запроса для папки или тега.
type NameRequest struct {
	Name *string `json:"name"`
}

// NoteRequest - тело запроса на создание или изменение заметки.
type NoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	FolderID *string   `json:"folderId"`
	Tags     *[]string `json:"tags"`
}

// Input переводит тело запроса во входные данные сценария.
func (r NoteRequest) Input() entities.NoteInput {
	return entities.NoteInput{
		Title:    r.Title,
		Content:  r.Content,
		FolderID: r.FolderID,
		Tags:     r.Tags,
	}
}

// FolderResponse представляет папку.
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagResponse представляет тег.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteTag - тег внутри заметки.
type NoteTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NoteResponse представляет заметку. folderId опускается, если папки нет.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folderId,omitempty"`
	Tags      []NoteTag `json:"tags"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewFolderResponse формирует ответ по папке.
func NewFolderResponse(folder *entities.Folder) FolderResponse {
	return FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		UserID:    folder.UserID,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

// NewFolderList формирует список папок.
func NewFolderList(folders []*entities.Folder) []FolderResponse {
	out := make([]FolderResponse, 0, len(folders))
	for _, folder := range folders {
		out = append(out, NewFolderResponse(folder))
	}
	return out
}

// NewTagResponse формирует ответ по тегу.
func NewTagResponse(tag *entities.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		UserID:    tag.UserID,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

// NewTagList формирует список тегов.
func NewTagList(tags []*entities.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NewTagResponse(tag))
	}
	return out
}

// NewNoteResponse формирует ответ по заметке с раскрытыми тегами.
func NewNoteResponse(view *entities.NoteView) NoteResponse {
	note := view.Note
	tags := make([]NoteTag, 0, len(view.Tags))
	for _, tag := range view.Tags {
		tags = append(tags, NoteTag{ID: tag.ID, Name: tag.Name})
	}

	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		FolderID:  note.FolderID,
		Tags:      tags,
		UserID:    note.UserID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// NewNoteList формирует список заметок.
func NewNoteList(views []*entities.NoteView) []NoteResponse {
	out := make([]NoteResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewNoteResponse(view))
	}
	return out
}
