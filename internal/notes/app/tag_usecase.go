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
	entityTag = "tag"

	errCtxListingTags = "listing tags"
	errCtxCreatingTag = "creating tag"
	errCtxUpdatingTag = "updating tag"
	errCtxFindingTag  = "finding tag"
)

// TagUseCaseImpl реализует api.TagUseCase.
type TagUseCaseImpl struct {
	tags      repositories.TagRepository
	integrity *Integrity
}

// NewTagUseCase создает сценарии работы с тегами.
func NewTagUseCase(tags repositories.TagRepository, integrity *Integrity) api.TagUseCase {
	return &TagUseCaseImpl{tags: tags, integrity: integrity}
}

func (uc *TagUseCaseImpl) List(ctx context.Context, userID string) ([]*entities.Tag, error) {
	tags, err := uc.tags.List(ctx, userID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxListingTags, err))
	}
	return tags, nil
}

func (uc *TagUseCaseImpl) Get(ctx context.Context, userID, tagID string) (*entities.Tag, error) {
	id, err := ValidateID(tagID)
	if err != nil {
		return nil, err
	}

	tag, err := uc.tags.FindByID(ctx, userID, id)
	if err != nil {
		return nil, tagError(err, errCtxFindingTag)
	}
	return tag, nil
}

func (uc *TagUseCaseImpl) Create(ctx context.Context, userID string, name *string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.Create"))

	valid, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	tag, err := uc.tags.Create(ctx, &entities.Tag{UserID: userID, Name: valid})
	if err != nil {
		return nil, tagError(err, errCtxCreatingTag)
	}

	log.Info(ctx, "tag created", zap.String("tagID", tag.ID))
	return tag, nil
}

func (uc *TagUseCaseImpl) Update(ctx context.Context, userID, tagID string, name *string) (*entities.Tag, error) {
	id, err := ValidateID(tagID)
	if err != nil {
		return nil, err
	}
	valid, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	tag, err := uc.tags.Update(ctx, &entities.Tag{ID: id, UserID: userID, Name: valid})
	if err != nil {
		return nil, tagError(err, errCtxUpdatingTag)
	}
	return tag, nil
}

// Delete удаляет тег и убирает его из всех заметок пользователя.
func (uc *TagUseCaseImpl) Delete(ctx context.Context, userID, tagID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.Delete"))

	id, err := ValidateID(tagID)
	if err != nil {
		return err
	}

	if err := uc.integrity.CascadeTagDelete(ctx, userID, id); err != nil {
		return err
	}

	log.Info(ctx, "tag deleted", zap.String("tagID", id))
	return nil
}

func tagError(err error, errCtx string) error {
	switch {
	case errors.Is(err, entities.ErrTagNotFound):
		return errs.NotFound(entityTag)
	case errors.Is(err, entities.ErrDuplicateName):
		return errs.Conflict(entityTag, err)
	default:
		return errs.Internal(fmt.Errorf("%s: %w", errCtx, err))
	}
}
