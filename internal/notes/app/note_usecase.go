package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"noteful/internal/errs"
	"noteful/internal/notes/domain/entities"
	"noteful/internal/notes/ports/api"
	"noteful/internal/notes/ports/repositories"
	"noteful/pkg/logger"
)

const (
	entityNote = "note"

	msgListingNotes = "listing notes"
	msgNoteCreated  = "note created"
	msgNoteUpdated  = "note updated"
	msgNoteDeleted  = "note deleted"

	errCtxListingNotes = "listing notes"
	errCtxFindingNote  = "finding note"
	errCtxCreatingNote = "creating note"
	errCtxUpdatingNote = "updating note"
	errCtxDeletingNote = "deleting note"
)

// NoteUseCaseImpl реализует api.NoteUseCase.
type NoteUseCaseImpl struct {
	notes     repositories.NoteRepository
	integrity *Integrity
}

// NewNoteUseCase создает сценарии работы с заметками.
func NewNoteUseCase(notes repositories.NoteRepository, integrity *Integrity) api.NoteUseCase {
	return &NoteUseCaseImpl{notes: notes, integrity: integrity}
}

// List возвращает заметки пользователя по фильтру, новые изменения первыми.
func (uc *NoteUseCaseImpl) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.NoteView, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.List"))

	valid, err := ValidateFilter(filter)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgListingNotes,
		zap.String("searchTerm", valid.SearchTerm),
		zap.String("folderID", valid.FolderID),
		zap.String("tagID", valid.TagID))

	notes, err := uc.notes.List(ctx, valid)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxListingNotes, err))
	}

	return uc.integrity.JoinTags(ctx, valid.UserID, notes)
}

// Get возвращает заметку пользователя с раскрытыми тегами.
func (uc *NoteUseCaseImpl) Get(ctx context.Context, userID, noteID string) (*entities.NoteView, error) {
	id, err := ValidateID(noteID)
	if err != nil {
		return nil, err
	}

	note, err := uc.notes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, noteError(err, errCtxFindingNote)
	}

	return uc.view(ctx, userID, note)
}

// Create проверяет заголовок, папку и теги и сохраняет заметку.
func (uc *NoteUseCaseImpl) Create(ctx context.Context, userID string, input entities.NoteInput) (*entities.NoteView, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Create"))

	title, err := ValidateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	note := &entities.Note{UserID: userID, Title: title, Tags: []string{}}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if err := uc.resolveRefs(ctx, userID, input, note); err != nil {
		return nil, err
	}

	created, err := uc.notes.Create(ctx, note)
	if err != nil {
		return nil, noteError(err, errCtxCreatingNote)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return uc.view(ctx, userID, created)
}

// Update изменяет заметку. Непереданные поля остаются прежними,
// пустые folderId и tags очищают папку и теги.
func (uc *NoteUseCaseImpl) Update(
	ctx context.Context,
	userID, noteID string,
	input entities.NoteInput,
) (*entities.NoteView, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Update"))

	id, err := ValidateID(noteID)
	if err != nil {
		return nil, err
	}
	title, err := ValidateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	note, err := uc.notes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, noteError(err, errCtxFindingNote)
	}

	note.Title = title
	if input.Content != nil {
		note.Content = *input.Content
	}
	if err := uc.resolveRefs(ctx, userID, input, note); err != nil {
		return nil, err
	}

	updated, err := uc.notes.Update(ctx, note)
	if err != nil {
		return nil, noteError(err, errCtxUpdatingNote)
	}

	log.Info(ctx, msgNoteUpdated, zap.String("noteID", updated.ID))
	return uc.view(ctx, userID, updated)
}

// Delete удаляет заметку.
func (uc *NoteUseCaseImpl) Delete(ctx context.Context, userID, noteID string) error {
	id, err := ValidateID(noteID)
	if err != nil {
		return err
	}

	if err := uc.notes.Delete(ctx, userID, id); err != nil {
		return noteError(err, errCtxDeletingNote)
	}

	logger.Log(ctx).Info(ctx, msgNoteDeleted, zap.String("method", "NoteUseCase.Delete"), zap.String("noteID", id))
	return nil
}

func (uc *NoteUseCaseImpl) resolveRefs(ctx context.Context, userID string, input entities.NoteInput, note *entities.Note) error {
	if input.FolderID != nil {
		folderID, err := uc.integrity.ResolveFolder(ctx, userID, *input.FolderID)
		if err != nil {
			return err
		}
		note.FolderID = folderID
	}

	if input.Tags != nil {
		tags, err := uc.integrity.ResolveTags(ctx, userID, *input.Tags)
		if err != nil {
			return err
		}
		note.Tags = tags
	}

	return nil
}

func (uc *NoteUseCaseImpl) view(ctx context.Context, userID string, note *entities.Note) (*entities.NoteView, error) {
	views, err := uc.integrity.JoinTags(ctx, userID, []*entities.Note{note})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func noteError(err error, errCtx string) error {
	if errors.Is(err, entities.ErrNoteNotFound) {
		return errs.NotFound(entityNote)
	}
	return errs.Internal(fmt.Errorf("%s: %w", errCtx, err))
}
