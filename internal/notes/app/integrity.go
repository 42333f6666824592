package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"noteful/internal/errs"
	"noteful/internal/notes/domain/entities"
	"noteful/internal/notes/ports/repositories"
	"noteful/pkg/logger"
)

const (
	errCtxFindingFolder   = "finding folder"
	errCtxFindingTags     = "finding tags"
	errCtxUnsettingFolder = "unsetting folder from notes"
	errCtxPullingTag      = "pulling tag from notes"
	errCtxDeletingFolder  = "deleting folder"
	errCtxDeletingTag     = "deleting tag"
)

// Integrity следит за тем, чтобы заметки ссылались только на папки и теги своего владельца.
// Каскадные операции выполняются последовательно, без транзакции.
type Integrity struct {
	folders repositories.FolderRepository
	tags    repositories.TagRepository
	notes   repositories.NoteRepository
}

// NewIntegrity создает движок ссылочной целостности.
func NewIntegrity(
	folders repositories.FolderRepository,
	tags repositories.TagRepository,
	notes repositories.NoteRepository,
) *Integrity {
	return &Integrity{folders: folders, tags: tags, notes: notes}
}

// ResolveFolder проверяет папку заметки. Пустая строка означает "без папки".
func (i *Integrity) ResolveFolder(ctx context.Context, userID, folderID string) (*string, error) {
	if folderID == "" {
		return nil, nil
	}

	id, ok := entities.CanonicalID(folderID)
	if !ok {
		return nil, errs.Invalid(fieldFolderID, MsgInvalidFolderID)
	}

	folder, err := i.folders.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, entities.ErrFolderNotFound) {
			return nil, errs.Invalid(fieldFolderID, MsgInvalidFolderID)
		}
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxFindingFolder, err))
	}

	return &folder.ID, nil
}

// ResolveTags проверяет теги заметки. Повторы схлопываются, а если хотя бы один
// тег не найден у пользователя, запрос отклоняется целиком.
func (i *Integrity) ResolveTags(ctx context.Context, userID string, tagIDs []string) ([]string, error) {
	unique := make([]string, 0, len(tagIDs))
	seen := make(map[string]struct{}, len(tagIDs))
	for _, raw := range tagIDs {
		id, ok := entities.CanonicalID(raw)
		if !ok {
			return nil, errs.Invalid(fieldTagID, MsgInvalidTags)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return []string{}, nil
	}

	found, err := i.tags.FindByIDs(ctx, userID, unique)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxFindingTags, err))
	}
	if len(found) != len(unique) {
		return nil, errs.Invalid(fieldTagID, MsgInvalidTags)
	}

	owned := make(map[string]struct{}, len(found))
	for _, tag := range found {
		owned[tag.ID] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := owned[id]; !ok {
			return nil, errs.Invalid(fieldTagID, MsgInvalidTags)
		}
	}

	return unique, nil
}

// JoinTags раскрывает идентификаторы тегов в {id, name}. Ссылки на удаленные теги пропускаются.
func (i *Integrity) JoinTags(ctx context.Context, userID string, notes []*entities.Note) ([]*entities.NoteView, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, note := range notes {
		for _, id := range note.Tags {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	byID := make(map[string]*entities.Tag, len(ids))
	if len(ids) > 0 {
		tags, err := i.tags.FindByIDs(ctx, userID, ids)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxFindingTags, err))
		}
		for _, tag := range tags {
			byID[tag.ID] = tag
		}
	}

	views := make([]*entities.NoteView, 0, len(notes))
	for _, note := range notes {
		view := &entities.NoteView{Note: note, Tags: make([]*entities.Tag, 0, len(note.Tags))}
		for _, id := range note.Tags {
			if tag, ok := byID[id]; ok {
				view.Tags = append(view.Tags, tag)
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// CascadeFolderDelete отвязывает заметки от папки и удаляет ее.
// Если отвязать не удалось, папка остается на месте.
func (i *Integrity) CascadeFolderDelete(ctx context.Context, userID, folderID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CascadeFolderDelete"), zap.String("folderID", folderID))

	unset, err := i.notes.UnsetFolder(ctx, userID, folderID)
	if err != nil {
		return errs.Internal(fmt.Errorf("%s: %w", errCtxUnsettingFolder, err))
	}
	log.Debug(ctx, "notes detached from folder", zap.Int64("notes", unset))

	if err := i.folders.Delete(ctx, userID, folderID); err != nil {
		if errors.Is(err, entities.ErrFolderNotFound) {
			return errs.NotFound("folder")
		}
		return errs.Internal(fmt.Errorf("%s: %w", errCtxDeletingFolder, err))
	}

	return nil
}

// CascadeTagDelete убирает тег из заметок и удаляет его.
func (i *Integrity) CascadeTagDelete(ctx context.Context, userID, tagID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CascadeTagDelete"), zap.String("tagID", tagID))

	pulled, err := i.notes.PullTag(ctx, userID, tagID)
	if err != nil {
		return errs.Internal(fmt.Errorf("%s: %w", errCtxPullingTag, err))
	}
	log.Debug(ctx, "tag pulled from notes", zap.Int64("notes", pulled))

	if err := i.tags.Delete(ctx, userID, tagID); err != nil {
		if errors.Is(err, entities.ErrTagNotFound) {
			return errs.NotFound("tag")
		}
		return errs.Internal(fmt.Errorf("%s: %w", errCtxDeletingTag, err))
	}

	return nil
}
