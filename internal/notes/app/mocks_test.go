package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"noteful/internal/notes/domain/entities"
)

type mockFolderRepository struct {
	mock.Mock
}

func (m *mockFolderRepository) List(ctx context.Context, userID string) ([]*entities.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) FindByID(ctx context.Context, userID, folderID string) (*entities.Folder, error) {
	args := m.Called(ctx, userID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) Update(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) Delete(ctx context.Context, userID, folderID string) error {
	return m.Called(ctx, userID, folderID).Error(0)
}

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) List(ctx context.Context, userID string) ([]*entities.Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) FindByID(ctx context.Context, userID, tagID string) (*entities.Tag, error) {
	args := m.Called(ctx, userID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) FindByIDs(ctx context.Context, userID string, tagIDs []string) ([]*entities.Tag, error) {
	args := m.Called(ctx, userID, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) Update(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) Delete(ctx context.Context, userID, tagID string) error {
	return m.Called(ctx, userID, tagID).Error(0)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) FindByID(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	return m.Called(ctx, userID, noteID).Error(0)
}

func (m *mockNoteRepository) UnsetFolder(ctx context.Context, userID, folderID string) (int64, error) {
	args := m.Called(ctx, userID, folderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) PullTag(ctx context.Context, userID, tagID string) (int64, error) {
	args := m.Called(ctx, userID, tagID)
	return args.Get(0).(int64), args.Error(1)
}
