package postgres_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteful/internal/notes/adapters/postgres"
	"noteful/internal/notes/app"
	"noteful/internal/notes/domain/entities"
	pgdb "noteful/pkg/db/postgres"
)

const migrationsDir = "../../../../migrations/noteful"

// TestIntegration_Cascades запускается только при заданной TEST_DATABASE_URL.
func TestIntegration_Cascades(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := testContext(t)
	require.NoError(t, pgdb.Migrate(ctx, dsn, migrationsDir))

	db, err := pgdb.New(ctx, dsn, pgdb.Options{MaxConns: 4, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })

	factory := postgres.NewRepositoryFactory(db.Pool())
	folders, tags, notes := factory.FolderRepository(), factory.TagRepository(), factory.NoteRepository()
	integrity := app.NewIntegrity(folders, tags, notes)

	owner := uuid.NewString()
	stranger := uuid.NewString()

	folder, err := folders.Create(ctx, &entities.Folder{UserID: owner, Name: "Work"})
	require.NoError(t, err)
	_, err = folders.Create(ctx, &entities.Folder{UserID: owner, Name: "Work"})
	require.ErrorIs(t, err, entities.ErrDuplicateName)
	_, err = folders.Create(ctx, &entities.Folder{UserID: stranger, Name: "Work"})
	require.NoError(t, err)

	tag, err := tags.Create(ctx, &entities.Tag{UserID: owner, Name: "urgent"})
	require.NoError(t, err)

	note, err := notes.Create(ctx, &entities.Note{
		UserID:   owner,
		Title:    "50% off_sale",
		FolderID: &folder.ID,
		Tags:     []string{tag.ID},
	})
	require.NoError(t, err)

	t.Run("поиск по литеральной подстроке", func(t *testing.T) {
		found, err := notes.List(ctx, entities.NoteFilter{UserID: owner, SearchTerm: "% OFF_"})
		require.NoError(t, err)
		require.Len(t, found, 1)

		found, err = notes.List(ctx, entities.NoteFilter{UserID: owner, SearchTerm: "5_%"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("чужой пользователь не видит заметку", func(t *testing.T) {
		_, err := notes.FindByID(ctx, stranger, note.ID)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("удаление тега убирает его из заметок", func(t *testing.T) {
		require.NoError(t, integrity.CascadeTagDelete(ctx, owner, tag.ID))

		got, err := notes.FindByID(ctx, owner, note.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("удаление папки отвязывает заметки", func(t *testing.T) {
		require.NoError(t, integrity.CascadeFolderDelete(ctx, owner, folder.ID))

		got, err := notes.FindByID(ctx, owner, note.ID)
		require.NoError(t, err)
		assert.Nil(t, got.FolderID)

		_, err = folders.FindByID(ctx, owner, folder.ID)
		assert.ErrorIs(t, err, entities.ErrFolderNotFound)
	})
}
