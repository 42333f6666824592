// Package api описывает сценарии работы с заметками, папками и тегами.
package api

import (
	"context"

	"noteful/internal/notes/domain/entities"
)

// FolderUseCase - операции над папками пользователя.
type FolderUseCase interface {
	List(ctx context.Context, userID string) ([]*entities.Folder, error)
	Get(ctx context.Context, userID, folderID string) (*entities.Folder, error)
	Create(ctx context.Context, userID string, name *string) (*entities.Folder, error)
	Update(ctx context.Context, userID, folderID string, name *string) (*entities.Folder, error)
	Delete(ctx context.Context, userID, folderID string) error
}

// TagUseCase - операции над тегами пользователя.
type TagUseCase interface {
	List(ctx context.Context, userID string) ([]*entities.Tag, error)
	Get(ctx context.Context, userID, tagID string) (*entities.Tag, error)
	Create(ctx context.Context, userID string, name *string) (*entities.Tag, error)
	Update(ctx context.Context, userID, tagID string, name *string) (*entities.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
}

// NoteUseCase - операции над заметками пользователя.
type NoteUseCase interface {
	List(ctx context.Context, filter entities.NoteFilter) ([]*entities.NoteView, error)
	Get(ctx context.Context, userID, noteID string) (*entities.NoteView, error)
	Create(ctx context.Context, userID string, input entities.NoteInput) (*entities.NoteView, error)
	Update(ctx context.Context, userID, noteID string, input entities.NoteInput) (*entities.NoteView, error)
	Delete(ctx context.Context, userID, noteID string) error
}
