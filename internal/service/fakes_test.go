package service

import (
	"context"
	"sync"
	"time"

	"conote-be/internal/access"
	"conote-be/internal/entity"
	"conote-be/internal/repository/contract"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// fakeStore is a shared in-memory backing store. The fake repositories
// interpret the same specification values the SQL implementations translate
// to WHERE clauses, so the services under test run unmodified.
type fakeStore struct {
	mu            sync.Mutex
	users         []*entity.User
	notebooks     []*entity.Notebook
	grants        []*entity.NotebookGrant
	notes         []*entity.Note
	bookmarks     []*entity.Bookmark
	comments      []*entity.Comment
	notifications []*entity.Notification
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &fakeStore{}}
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(_ context.Context) error { return nil }
func (u *fakeUow) Commit() error                 { return nil }
func (u *fakeUow) Rollback() error               { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}
func (u *fakeUow) NotebookRepository() contract.NotebookRepository {
	return &fakeNotebookRepo{store: u.store}
}
func (u *fakeUow) NotebookGrantRepository() contract.NotebookGrantRepository {
	return &fakeGrantRepo{store: u.store}
}
func (u *fakeUow) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepo{store: u.store}
}
func (u *fakeUow) BookmarkRepository() contract.BookmarkRepository {
	return &fakeBookmarkRepo{store: u.store}
}
func (u *fakeUow) CommentRepository() contract.CommentRepository {
	return &fakeCommentRepo{store: u.store}
}
func (u *fakeUow) NotificationRepository() contract.NotificationRepository {
	return &fakeNotificationRepo{store: u.store}
}

func newId() uuid.UUID { return uuid.New() }

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// --- users ---

type fakeUserRepo struct {
	store *fakeStore
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.users {
		if existing.Id == user.Id {
			clone := *user
			r.store.users[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.User
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			clone := *u
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- notebooks ---

type fakeNotebookRepo struct {
	store *fakeStore
}

func matchNotebook(n *entity.Notebook, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			if !containsId(s.IDs, n.Id) {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.OwnedOrGranted:
			if n.UserId != s.UserID && !containsId(s.GrantedIDs, n.Id) {
				return false
			}
		case specification.NotArchived:
			if n.ArchivedAt != nil {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeNotebookRepo) Create(_ context.Context, notebook *entity.Notebook) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *notebook
	r.store.notebooks = append(r.store.notebooks, &clone)
	return nil
}

func (r *fakeNotebookRepo) Update(_ context.Context, notebook *entity.Notebook) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.notebooks {
		if existing.Id == notebook.Id {
			clone := *notebook
			r.store.notebooks[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeNotebookRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.notebooks[:0]
	for _, n := range r.store.notebooks {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	r.store.notebooks = kept
	return nil
}

func (r *fakeNotebookRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notebooks {
		if matchNotebook(n, specs) {
			clone := *n
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeNotebookRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Notebook
	for _, n := range r.store.notebooks {
		if matchNotebook(n, specs) {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeNotebookRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- notebook grants ---

type fakeGrantRepo struct {
	store *fakeStore
}

func matchGrant(g *entity.NotebookGrant, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if g.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if g.UserId != s.UserID {
				return false
			}
		case specification.ByNotebookID:
			if g.NotebookId != s.NotebookID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeGrantRepo) Create(_ context.Context, grant *entity.NotebookGrant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *grant
	r.store.grants = append(r.store.grants, &clone)
	return nil
}

func (r *fakeGrantRepo) DeleteAllByPair(_ context.Context, notebookId, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.grants[:0]
	for _, g := range r.store.grants {
		if g.NotebookId != notebookId || g.UserId != userId {
			kept = append(kept, g)
		}
	}
	r.store.grants = kept
	return nil
}

func (r *fakeGrantRepo) DeleteAllByNotebookId(_ context.Context, notebookId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.grants[:0]
	for _, g := range r.store.grants {
		if g.NotebookId != notebookId {
			kept = append(kept, g)
		}
	}
	r.store.grants = kept
	return nil
}

func (r *fakeGrantRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.NotebookGrant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.NotebookGrant
	for _, g := range r.store.grants {
		if matchGrant(g, specs) {
			clone := *g
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeGrantRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- notes ---

type fakeNoteRepo struct {
	store *fakeStore
}

func matchNote(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.ByNotebookID:
			if n.NotebookId != s.NotebookID {
				return false
			}
		case specification.ByNotebookIDs:
			if !containsId(s.NotebookIDs, n.NotebookId) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *note
	r.store.notes = append(r.store.notes, &clone)
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.notes {
		if existing.Id == note.Id {
			clone := *note
			r.store.notes[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.notes[:0]
	for _, n := range r.store.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepo) DeleteAllByNotebookId(_ context.Context, notebookId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.notes[:0]
	for _, n := range r.store.notes {
		if n.NotebookId != notebookId {
			kept = append(kept, n)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notes {
		if matchNote(n, specs) {
			clone := *n
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Note
	for _, n := range r.store.notes {
		if matchNote(n, specs) {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- bookmarks ---

type fakeBookmarkRepo struct {
	store *fakeStore
}

func matchBookmark(b *entity.Bookmark, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if b.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if b.UserId != s.UserID {
				return false
			}
		case specification.ByNoteID:
			if b.NoteId != s.NoteID {
				return false
			}
		case specification.ByNoteIDs:
			if !containsId(s.NoteIDs, b.NoteId) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeBookmarkRepo) Create(_ context.Context, bookmark *entity.Bookmark) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *bookmark
	r.store.bookmarks = append(r.store.bookmarks, &clone)
	return nil
}

func (r *fakeBookmarkRepo) Update(_ context.Context, bookmark *entity.Bookmark) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.bookmarks {
		if existing.Id == bookmark.Id {
			clone := *bookmark
			r.store.bookmarks[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeBookmarkRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.bookmarks[:0]
	for _, b := range r.store.bookmarks {
		if b.Id != id {
			kept = append(kept, b)
		}
	}
	r.store.bookmarks = kept
	return nil
}

func (r *fakeBookmarkRepo) DeleteAllByNoteIds(_ context.Context, noteIds []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.bookmarks[:0]
	for _, b := range r.store.bookmarks {
		if !containsId(noteIds, b.NoteId) {
			kept = append(kept, b)
		}
	}
	r.store.bookmarks = kept
	return nil
}

func (r *fakeBookmarkRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Bookmark, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookmarks {
		if matchBookmark(b, specs) {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBookmarkRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Bookmark
	for _, b := range r.store.bookmarks {
		if matchBookmark(b, specs) {
			clone := *b
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeBookmarkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- comments ---

type fakeCommentRepo struct {
	store *fakeStore
}

func matchComment(c *entity.Comment, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.ByNoteID:
			if c.NoteId != s.NoteID {
				return false
			}
		case specification.ByNoteIDs:
			if !containsId(s.NoteIDs, c.NoteId) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *comment
	r.store.comments = append(r.store.comments, &clone)
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.comments {
		if existing.Id == comment.Id {
			clone := *comment
			r.store.comments[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.comments[:0]
	for _, c := range r.store.comments {
		if c.Id != id {
			kept = append(kept, c)
		}
	}
	r.store.comments = kept
	return nil
}

func (r *fakeCommentRepo) DeleteAllByNoteIds(_ context.Context, noteIds []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.comments[:0]
	for _, c := range r.store.comments {
		if !containsId(noteIds, c.NoteId) {
			kept = append(kept, c)
		}
	}
	r.store.comments = kept
	return nil
}

func (r *fakeCommentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.comments {
		if matchComment(c, specs) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Comment
	for _, c := range r.store.comments {
		if matchComment(c, specs) {
			clone := *c
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	store *fakeStore
}

func matchNotification(n *entity.Notification, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		}
	}
	return true
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *notification
	r.store.notifications = append(r.store.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Notification
	for _, n := range r.store.notifications {
		if matchNotification(n, specs) {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- event bus spy ---

type publishedMessage struct {
	topic   string
	payload []byte
}

// recordingBus captures publishes without running subscribers.
type recordingBus struct {
	mu        sync.Mutex
	published []publishedMessage
}

func (b *recordingBus) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, publishedMessage{topic: topic, payload: payload})
	return nil
}

func (b *recordingBus) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	return nil, nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) byTopic(topic string) []publishedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	var result []publishedMessage
	for _, m := range b.published {
		if m.topic == topic {
			result = append(result, m)
		}
	}
	return result
}

// --- logger stub and fixtures ---

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func seedUser(f *fakeFactory, username, email, phone string, superuser bool) *entity.User {
	user := &entity.User{
		Id:          uuid.New(),
		Username:    username,
		Email:       email,
		PhoneNumber: phone,
		IsSuperuser: superuser,
		CreatedAt:   time.Now(),
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.users = append(f.store.users, user)
	return user
}

func principalOf(user *entity.User) access.Principal {
	return access.Principal{
		Id:          user.Id,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		IsSuperuser: user.IsSuperuser,
	}
}

func seedNotebook(f *fakeFactory, ownerId uuid.UUID, title string) *entity.Notebook {
	notebook := &entity.Notebook{
		Id:        uuid.New(),
		Title:     title,
		UserId:    ownerId,
		CreatedAt: time.Now(),
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.notebooks = append(f.store.notebooks, notebook)
	return notebook
}

func seedGrant(f *fakeFactory, notebookId, userId uuid.UUID) *entity.NotebookGrant {
	grant := &entity.NotebookGrant{
		Id:         uuid.New(),
		NotebookId: notebookId,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.grants = append(f.store.grants, grant)
	return grant
}

func seedNote(f *fakeFactory, notebookId uuid.UUID, title string, placement int) *entity.Note {
	note := &entity.Note{
		Id:         uuid.New(),
		Title:      title,
		Placement:  placement,
		NotebookId: notebookId,
		CreatedAt:  time.Now(),
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.notes = append(f.store.notes, note)
	return note
}
