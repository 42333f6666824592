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
	queryFindNote = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`

	queryCreateNote = `
        INSERT INTO notes (user_id, title, content, folder_id, tags)
        VALUES ($1, $2, $3, $4, $5::uuid[])
        RETURNING ` + noteColumns

	queryUpdateNote = `
        UPDATE notes
        SET title = $1, content = $2, folder_id = $3, tags = $4::uuid[], updated_at = now()
        WHERE id = $5 AND user_id = $6
        RETURNING ` + noteColumns

	queryDeleteNote = `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	queryUnsetFolder = `
        UPDATE notes SET folder_id = NULL, updated_at = now()
        WHERE user_id = $1 AND folder_id = $2
    `

	queryPullTag = `
        UPDATE notes SET tags = array_remove(tags, $2::uuid), updated_at = now()
        WHERE user_id = $1 AND $2::uuid = ANY(tags)
    `
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// List возвращает заметки пользователя, подходящие под фильтр.
func (r *NoteRepository) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))

	query, args := BuildNoteListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// FindByID получает заметку по ID и ID пользователя.
func (r *NoteRepository) FindByID(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	return r.queryOne(ctx, "NoteRepository.FindByID", queryFindNote, noteID, userID)
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	return r.queryOne(ctx, "NoteRepository.Create", queryCreateNote,
		note.UserID, note.Title, note.Content, note.FolderID, tagsArg(note.Tags))
}

// Update перезаписывает изменяемые поля заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	return r.queryOne(ctx, "NoteRepository.Update", queryUpdateNote,
		note.Title, note.Content, note.FolderID, tagsArg(note.Tags), note.ID, note.UserID)
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteNote, noteID, userID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return entities.ErrNoteNotFound
	}

	return nil
}

// UnsetFolder убирает папку из заметок пользователя и возвращает число измененных заметок.
func (r *NoteRepository) UnsetFolder(ctx context.Context, userID, folderID string) (int64, error) {
	return r.exec(ctx, "NoteRepository.UnsetFolder", queryUnsetFolder, userID, folderID)
}

// PullTag удаляет тег из заметок пользователя.
func (r *NoteRepository) PullTag(ctx context.Context, userID, tagID string) (int64, error) {
	return r.exec(ctx, "NoteRepository.PullTag", queryPullTag, userID, tagID)
}

func (r *NoteRepository) exec(ctx context.Context, method, query string, args ...any) (int64, error) {
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to update notes", zap.String("method", method), zap.Error(err))
		return 0, fmt.Errorf("failed to update notes: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *NoteRepository) queryOne(ctx context.Context, method, query string, args ...any) (*entities.Note, error) {
	note, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		logger.Log(ctx).Error(ctx, "note query failed", zap.String("method", method), zap.Error(err))
		return nil, fmt.Errorf("note query failed: %w", err)
	}
	return note, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.FolderID,
		&note.Tags,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return &note, nil
}

func tagsArg(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
