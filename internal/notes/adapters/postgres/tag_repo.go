package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteful/internal/notes/domain/entities"
	"noteful/internal/notes/ports/repositories"
	"noteful/pkg/logger"
)

const (
	queryListTags = `
        SELECT id, user_id, name, created_at, updated_at
        FROM tags
        WHERE user_id = $1
        ORDER BY name ASC
    `

	queryFindTag = `
        SELECT id, user_id, name, created_at, updated_at
        FROM tags
        WHERE id = $1 AND user_id = $2
    `

	queryCreateTag = `
        INSERT INTO tags (user_id, name)
        VALUES ($1, $2)
        RETURNING id, user_id, name, created_at, updated_at
    `

	queryUpdateTag = `
        UPDATE tags SET name = $1, updated_at = now()
        WHERE id = $2 AND user_id = $3
        RETURNING id, user_id, name, created_at, updated_at
    `

	queryFindTagsByIDs = `
        SELECT id, user_id, name, created_at, updated_at
        FROM tags
        WHERE user_id = $1 AND id = ANY($2::uuid[])
    `

	queryDeleteTag = `DELETE FROM tags WHERE id = $1 AND user_id = $2`
)

// TagRepository реализует repositories.TagRepository.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает репозиторий тегов.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// List возвращает теги пользователя по алфавиту.
func (r *TagRepository) List(ctx context.Context, userID string) ([]*entities.Tag, error) {
	return r.scanMany(ctx, "TagRepository.List", queryListTags, userID)
}

// FindByIDs возвращает найденные теги пользователя из списка ids.
func (r *TagRepository) FindByIDs(ctx context.Context, userID string, tagIDs []string) ([]*entities.Tag, error) {
	return r.scanMany(ctx, "TagRepository.FindByIDs", queryFindTagsByIDs, userID, tagIDs)
}

// FindByID возвращает тег пользователя или entities.ErrTagNotFound.
func (r *TagRepository) FindByID(ctx context.Context, userID, tagID string) (*entities.Tag, error) {
	return r.scanOne(ctx, "TagRepository.FindByID", queryFindTag, tagID, userID)
}

// Create сохраняет тег. Повтор имени у того же пользователя дает entities.ErrDuplicateName.
func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	return r.scanOne(ctx, "TagRepository.Create", queryCreateTag, tag.UserID, tag.Name)
}

// Update переименовывает тег.
func (r *TagRepository) Update(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	return r.scanOne(ctx, "TagRepository.Update", queryUpdateTag, tag.Name, tag.ID, tag.UserID)
}

// Delete удаляет тег. Ссылки из заметок не трогает.
func (r *TagRepository) Delete(ctx context.Context, userID, tagID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteTag, tagID, userID)
	if err != nil {
		log.Error(ctx, "failed to delete tag", zap.Error(err))
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrTagNotFound
	}

	return nil
}

func (r *TagRepository) scanOne(ctx context.Context, method, query string, args ...any) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	var tag entities.Tag
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, entities.ErrTagNotFound
		case isUniqueViolation(err):
			log.Debug(ctx, "tag name already exists")
			return nil, entities.ErrDuplicateName
		default:
			log.Error(ctx, "tag query failed", zap.Error(err))
			return nil, fmt.Errorf("tag query failed: %w", err)
		}
	}

	return &tag, nil
}

func (r *TagRepository) scanMany(ctx context.Context, method, query string, args ...any) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to query tags", zap.Error(err))
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		var tag entities.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			log.Error(ctx, "failed to scan tag", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}
