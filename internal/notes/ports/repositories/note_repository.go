// Package repositories описывает хранилища заметок, папок и тегов.
package repositories

import (
	"context"

	"noteful/internal/notes/domain/entities"
)

// FolderRepository определяет интерфейс для работы с папками.
// Все методы ограничены папками пользователя userID.
type FolderRepository interface {
	List(ctx context.Context, userID string) ([]*entities.Folder, error)
	FindByID(ctx context.Context, userID, folderID string) (*entities.Folder, error)
	Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error)
	Update(ctx context.Context, folder *entities.Folder) (*entities.Folder, error)
	Delete(ctx context.Context, userID, folderID string) error
}

// TagRepository определяет интерфейс для работы с тегами.
type TagRepository interface {
	List(ctx context.Context, userID string) ([]*entities.Tag, error)
	FindByID(ctx context.Context, userID, tagID string) (*entities.Tag, error)
	// FindByIDs возвращает только найденные теги пользователя, порядок не гарантирован.
	FindByIDs(ctx context.Context, userID string, tagIDs []string) ([]*entities.Tag, error)
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	Update(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
}

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
type NoteRepository interface {
	List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error)
	FindByID(ctx context.Context, userID, noteID string) (*entities.Note, error)
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
	// UnsetFolder убирает папку из всех заметок пользователя.
	UnsetFolder(ctx context.Context, userID, folderID string) (int64, error)
	// PullTag удаляет тег из всех заметок пользователя.
	PullTag(ctx context.Context, userID, tagID string) (int64, error)
}
