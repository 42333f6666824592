package postgres

import (
	"noteful/internal/notes/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// FolderRepository возвращает репозиторий папок.
func (f *RepositoryFactory) FolderRepository() repositories.FolderRepository {
	return NewFolderRepository(f.pool)
}

// TagRepository возвращает репозиторий тегов.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return NewTagRepository(f.pool)
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}
