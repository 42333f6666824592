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
	entityFolder = "folder"

	errCtxListingFolders = "listing folders"
	errCtxCreatingFolder = "creating folder"
	errCtxUpdatingFolder = "updating folder"
)

// FolderUseCaseImpl реализует api.FolderUseCase.
type FolderUseCaseImpl struct {
	folders   repositories.FolderRepository
	integrity *Integrity
}

// NewFolderUseCase создает сценарии работы с папками.
func NewFolderUseCase(folders repositories.FolderRepository, integrity *Integrity) api.FolderUseCase {
	return &FolderUseCaseImpl{folders: folders, integrity: integrity}
}

// List возвращает папки пользователя, отсортированные по имени.
func (uc *FolderUseCaseImpl) List(ctx context.Context, userID string) ([]*entities.Folder, error) {
	folders, err := uc.folders.List(ctx, userID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxListingFolders, err))
	}
	return folders, nil
}

// Get возвращает папку пользователя.
func (uc *FolderUseCaseImpl) Get(ctx context.Context, userID, folderID string) (*entities.Folder, error) {
	id, err := ValidateID(folderID)
	if err != nil {
		return nil, err
	}

	folder, err := uc.folders.FindByID(ctx, userID, id)
	if err != nil {
		return nil, folderError(err, errCtxFindingFolder)
	}
	return folder, nil
}

// Create создает папку.
func (uc *FolderUseCaseImpl) Create(ctx context.Context, userID string, name *string) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderUseCase.Create"))

	valid, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	folder, err := uc.folders.Create(ctx, &entities.Folder{UserID: userID, Name: valid})
	if err != nil {
		return nil, folderError(err, errCtxCreatingFolder)
	}

	log.Info(ctx, "folder created", zap.String("folderID", folder.ID))
	return folder, nil
}

// Update переименовывает папку.
func (uc *FolderUseCaseImpl) Update(ctx context.Context, userID, folderID string, name *string) (*entities.Folder, error) {
	id, err := ValidateID(folderID)
	if err != nil {
		return nil, err
	}
	valid, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	folder, err := uc.folders.Update(ctx, &entities.Folder{ID: id, UserID: userID, Name: valid})
	if err != nil {
		return nil, folderError(err, errCtxUpdatingFolder)
	}
	return folder, nil
}

// Delete удаляет папку; заметки из нее остаются без папки.
func (uc *FolderUseCaseImpl) Delete(ctx context.Context, userID, folderID string) error {
	log := logger.Log(ctx).With(zap.String("method", "FolderUseCase.Delete"))

	id, err := ValidateID(folderID)
	if err != nil {
		return err
	}

	if err := uc.integrity.CascadeFolderDelete(ctx, userID, id); err != nil {
		return err
	}

	log.Info(ctx, "folder deleted", zap.String("folderID", id))
	return nil
}

func folderError(err error, errCtx string) error {
	switch {
	case errors.Is(err, entities.ErrFolderNotFound):
		return errs.NotFound(entityFolder)
	case errors.Is(err, entities.ErrDuplicateName):
		return errs.Conflict(entityFolder, err)
	default:
		return errs.Internal(fmt.Errorf("%s: %w", errCtx, err))
	}
}
