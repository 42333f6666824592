// Package postgres содержит хранилища папок, тегов и заметок на Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteful/internal/notes/domain/entities"
	"noteful/internal/notes/ports/repositories"
	"noteful/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое можно подменить pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	queryListFolders = `
        SELECT id, user_id, name, created_at, updated_at
        FROM folders
        WHERE user_id = $1
        ORDER BY name ASC
    `

	queryFindFolder = `
        SELECT id, user_id, name, created_at, updated_at
        FROM folders
        WHERE id = $1 AND user_id = $2
    `

	queryCreateFolder = `
        INSERT INTO folders (user_id, name)
        VALUES ($1, $2)
        RETURNING id, user_id, name, created_at, updated_at
    `

	queryUpdateFolder = `
        UPDATE folders SET name = $1, updated_at = now()
        WHERE id = $2 AND user_id = $3
        RETURNING id, user_id, name, created_at, updated_at
    `

	queryDeleteFolder = `DELETE FROM folders WHERE id = $1 AND user_id = $2`
)

// FolderRepository реализует repositories.FolderRepository.
type FolderRepository struct {
	pool PgxPoolInterface
}

// NewFolderRepository создает репозиторий папок.
func NewFolderRepository(pool PgxPoolInterface) repositories.FolderRepository {
	return &FolderRepository{pool: pool}
}

// List возвращает папки пользователя по алфавиту.
func (r *FolderRepository) List(ctx context.Context, userID string) ([]*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.List"))

	rows, err := r.pool.Query(ctx, queryListFolders, userID)
	if err != nil {
		log.Error(ctx, "failed to list folders", zap.Error(err))
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	folders := make([]*entities.Folder, 0)
	for rows.Next() {
		var folder entities.Folder
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt); err != nil {
			log.Error(ctx, "failed to scan folder", zap.Error(err))
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, &folder)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return folders, nil
}

// FindByID возвращает папку пользователя или entities.ErrFolderNotFound.
func (r *FolderRepository) FindByID(ctx context.Context, userID, folderID string) (*entities.Folder, error) {
	return r.scanOne(ctx, "FolderRepository.FindByID", queryFindFolder, folderID, userID)
}

// Create сохраняет папку. Повтор имени у того же пользователя дает entities.ErrDuplicateName.
func (r *FolderRepository) Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	return r.scanOne(ctx, "FolderRepository.Create", queryCreateFolder, folder.UserID, folder.Name)
}

// Update переименовывает папку.
func (r *FolderRepository) Update(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	return r.scanOne(ctx, "FolderRepository.Update", queryUpdateFolder, folder.Name, folder.ID, folder.UserID)
}

// Delete удаляет папку. Ссылки из заметок не трогает.
func (r *FolderRepository) Delete(ctx context.Context, userID, folderID string) error {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteFolder, folderID, userID)
	if err != nil {
		log.Error(ctx, "failed to delete folder", zap.Error(err))
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrFolderNotFound
	}

	return nil
}

func (r *FolderRepository) scanOne(ctx context.Context, method, query string, args ...any) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	var folder entities.Folder
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, entities.ErrFolderNotFound
		case isUniqueViolation(err):
			log.Debug(ctx, "folder name already exists")
			return nil, entities.ErrDuplicateName
		default:
			log.Error(ctx, "folder query failed", zap.Error(err))
			return nil, fmt.Errorf("folder query failed: %w", err)
		}
	}

	return &folder, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
