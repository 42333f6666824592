package postgres

import (
	"fmt"
	"strings"

	"noteful/internal/notes/domain/entities"
)

const noteColumns = `id, user_id, title, content, folder_id, tags, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike экранирует спецсимволы шаблона LIKE, чтобы term искался как обычная подстрока.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// BuildNoteListQuery собирает выборку заметок пользователя по фильтру.
// Условия объединяются через AND, сортировка от последних изменений.
func BuildNoteListQuery(filter entities.NoteFilter) (string, []any) {
	args := []any{filter.UserID}
	conditions := []string{"user_id = $1"}

	if filter.SearchTerm != "" {
		args = append(args, "%"+EscapeLike(filter.SearchTerm)+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`, n, n))
	}
	if filter.FolderID != "" {
		args = append(args, filter.FolderID)
		conditions = append(conditions, fmt.Sprintf("folder_id = $%d", len(args)))
	}
	if filter.TagID != "" {
		args = append(args, filter.TagID)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	query := "SELECT " + noteColumns +
		" FROM notes WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY updated_at DESC"

	return query, args
}
