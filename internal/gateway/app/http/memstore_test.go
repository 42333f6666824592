package http_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	authentities "noteful/internal/auth/domain/entities"
	"noteful/internal/notes/domain/entities"
)

// clock выдает строго возрастающие метки времени, чтобы порядок updatedAt был однозначным.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type memUsers struct {
	mu    sync.Mutex
	clock *clock
	users map[string]*authentities.User
}

func (m *memUsers) Create(_ context.Context, user *authentities.User) (*authentities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return nil, authentities.ErrUsernameDuplicate
	}
	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = m.clock.tick()
	created.UpdatedAt = created.CreatedAt
	m.users[user.Username] = &created
	return &created, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*authentities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, authentities.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (m *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[username]
	return ok, nil
}

type memFolders struct {
	mu      sync.Mutex
	clock   *clock
	folders map[string]*entities.Folder
}

func (m *memFolders) List(_ context.Context, userID string) ([]*entities.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Folder, 0)
	for _, folder := range m.folders {
		if folder.UserID == userID {
			copied := *folder
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memFolders) FindByID(_ context.Context, userID, folderID string) (*entities.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folder, ok := m.folders[folderID]
	if !ok || folder.UserID != userID {
		return nil, entities.ErrFolderNotFound
	}
	copied := *folder
	return &copied, nil
}

func (m *memFolders) Create(_ context.Context, folder *entities.Folder) (*entities.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(folder.UserID, folder.Name, "") {
		return nil, entities.ErrDuplicateName
	}
	created := *folder
	created.ID = uuid.NewString()
	created.CreatedAt = m.clock.tick()
	created.UpdatedAt = created.CreatedAt
	m.folders[created.ID] = &created
	copied := created
	return &copied, nil
}

func (m *memFolders) Update(_ context.Context, folder *entities.Folder) (*entities.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.folders[folder.ID]
	if !ok || stored.UserID != folder.UserID {
		return nil, entities.ErrFolderNotFound
	}
	if m.taken(folder.UserID, folder.Name, folder.ID) {
		return nil, entities.ErrDuplicateName
	}
	stored.Name = folder.Name
	stored.UpdatedAt = m.clock.tick()
	copied := *stored
	return &copied, nil
}

func (m *memFolders) Delete(_ context.Context, userID, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folder, ok := m.folders[folderID]
	if !ok || folder.UserID != userID {
		return entities.ErrFolderNotFound
	}
	delete(m.folders, folderID)
	return nil
}

func (m *memFolders) taken(userID, name, exceptID string) bool {
	for id, folder := range m.folders {
		if id != exceptID && folder.UserID == userID && folder.Name == name {
			return true
		}
	}
	return false
}

type memTags struct {
	mu    sync.Mutex
	clock *clock
	tags  map[string]*entities.Tag
}

func (m *memTags) List(_ context.Context, userID string) ([]*entities.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Tag, 0)
	for _, tag := range m.tags {
		if tag.UserID == userID {
			copied := *tag
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memTags) FindByID(_ context.Context, userID, tagID string) (*entities.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[tagID]
	if !ok || tag.UserID != userID {
		return nil, entities.ErrTagNotFound
	}
	copied := *tag
	return &copied, nil
}

func (m *memTags) FindByIDs(_ context.Context, userID string, tagIDs []string) ([]*entities.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		if tag, ok := m.tags[id]; ok && tag.UserID == userID {
			copied := *tag
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memTags) Create(_ context.Context, tag *entities.Tag) (*entities.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(tag.UserID, tag.Name, "") {
		return nil, entities.ErrDuplicateName
	}
	created := *tag
	created.ID = uuid.NewString()
	created.CreatedAt = m.clock.tick()
	created.UpdatedAt = created.CreatedAt
	m.tags[created.ID] = &created
	copied := created
	return &copied, nil
}

func (m *memTags) Update(_ context.Context, tag *entities.Tag) (*entities.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tags[tag.ID]
	if !ok || stored.UserID != tag.UserID {
		return nil, entities.ErrTagNotFound
	}
	if m.taken(tag.UserID, tag.Name, tag.ID) {
		return nil, entities.ErrDuplicateName
	}
	stored.Name = tag.Name
	stored.UpdatedAt = m.clock.tick()
	copied := *stored
	return &copied, nil
}

func (m *memTags) Delete(_ context.Context, userID, tagID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[tagID]
	if !ok || tag.UserID != userID {
		return entities.ErrTagNotFound
	}
	delete(m.tags, tagID)
	return nil
}

func (m *memTags) taken(userID, name, exceptID string) bool {
	for id, tag := range m.tags {
		if id != exceptID && tag.UserID == userID && tag.Name == name {
			return true
		}
	}
	return false
}

type memNotes struct {
	mu    sync.Mutex
	clock *clock
	notes map[string]*entities.Note
}

func copyNote(note *entities.Note) *entities.Note {
	copied := *note
	copied.Tags = append([]string{}, note.Tags...)
	if note.FolderID != nil {
		folderID := *note.FolderID
		copied.FolderID = &folderID
	}
	return &copied
}

func (m *memNotes) List(_ context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term := strings.ToLower(filter.SearchTerm)
	out := make([]*entities.Note, 0)
	for _, note := range m.notes {
		if note.UserID != filter.UserID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(note.Title), term) &&
			!strings.Contains(strings.ToLower(note.Content), term) {
			continue
		}
		if filter.FolderID != "" && (note.FolderID == nil || *note.FolderID != filter.FolderID) {
			continue
		}
		if filter.TagID != "" && !contains(note.Tags, filter.TagID) {
			continue
		}
		out = append(out, copyNote(note))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memNotes) FindByID(_ context.Context, userID, noteID string) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, entities.ErrNoteNotFound
	}
	return copyNote(note), nil
}

func (m *memNotes) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := copyNote(note)
	created.ID = uuid.NewString()
	created.CreatedAt = m.clock.tick()
	created.UpdatedAt = created.CreatedAt
	m.notes[created.ID] = created
	return copyNote(created), nil
}

func (m *memNotes) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.notes[note.ID]
	if !ok || stored.UserID != note.UserID {
		return nil, entities.ErrNoteNotFound
	}
	updated := copyNote(note)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = m.clock.tick()
	m.notes[note.ID] = updated
	return copyNote(updated), nil
}

func (m *memNotes) Delete(_ context.Context, userID, noteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.notes[noteID]
	if !ok || note.UserID != userID {
		return entities.ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}

func (m *memNotes) UnsetFolder(_ context.Context, userID, folderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, note := range m.notes {
		if note.UserID == userID && note.FolderID != nil && *note.FolderID == folderID {
			note.FolderID = nil
			note.UpdatedAt = m.clock.tick()
			n++
		}
	}
	return n, nil
}

func (m *memNotes) PullTag(_ context.Context, userID, tagID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, note := range m.notes {
		if note.UserID != userID || !contains(note.Tags, tagID) {
			continue
		}
		kept := note.Tags[:0]
		for _, id := range note.Tags {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		note.Tags = kept
		note.UpdatedAt = m.clock.tick()
		n++
	}
	return n, nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var errStoreDown = errors.New("store down")

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error { return p.err }
