package postgres_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"noteful/internal/notes/adapters/postgres"
	"noteful/internal/notes/domain/entities"
)

func TestBuildNoteListQuery(t *testing.T) {
	const base = "SELECT id, user_id, title, content, folder_id, tags, created_at, updated_at FROM notes WHERE "

	tests := []struct {
		name      string
		filter    entities.NoteFilter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "только пользователь",
			filter:    entities.NoteFilter{UserID: "u"},
			wantQuery: base + "user_id = $1 ORDER BY updated_at DESC",
			wantArgs:  []any{"u"},
		},
		{
			name:      "поиск",
			filter:    entities.NoteFilter{UserID: "u", SearchTerm: "Milk"},
			wantQuery: base + `user_id = $1 AND (title ILIKE $2 ESCAPE '\' OR content ILIKE $2 ESCAPE '\') ORDER BY updated_at DESC`,
			wantArgs:  []any{"u", "%Milk%"},
		},
		{
			name:      "папка и тег",
			filter:    entities.NoteFilter{UserID: "u", FolderID: "f", TagID: "t"},
			wantQuery: base + "user_id = $1 AND folder_id = $2 AND $3 = ANY(tags) ORDER BY updated_at DESC",
			wantArgs:  []any{"u", "f", "t"},
		},
		{
			name:   "все условия",
			filter: entities.NoteFilter{UserID: "u", SearchTerm: "50%_off", FolderID: "f", TagID: "t"},
			wantQuery: base + `user_id = $1 AND (title ILIKE $2 ESCAPE '\' OR content ILIKE $2 ESCAPE '\')` +
				" AND folder_id = $3 AND $4 = ANY(tags) ORDER BY updated_at DESC",
			wantArgs: []any{"u", `%50\%\_off%`, "f", "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := postgres.BuildNoteListQuery(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", postgres.EscapeLike("plain"))
	assert.Equal(t, `a\%b\_c\\d`, postgres.EscapeLike(`a%b_c\d`))
	assert.Equal(t, "(.*)+[]", postgres.EscapeLike("(.*)+[]"))
}

// unescapeLike разбирает экранированный шаблон и сообщает, остались ли в нем подстановочные символы.
func unescapeLike(pattern string) (string, bool) {
	var (
		out      strings.Builder
		wildcard bool
	)
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\' && i+1 < len(pattern):
			i++
			out.WriteByte(pattern[i])
		case c == '%' || c == '_':
			wildcard = true
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), wildcard
}

func TestEscapeLikeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		term := rapid.String().Draw(t, "term")

		got, wildcard := unescapeLike(postgres.EscapeLike(term))
		if wildcard {
			t.Fatalf("unescaped wildcard left in %q", postgres.EscapeLike(term))
		}
		if got != term {
			t.Fatalf("round trip of %q gave %q", term, got)
		}
	})
}
