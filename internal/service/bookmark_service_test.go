package service

import (
	"context"
	"testing"

	"conote-be/internal/access"
	"conote-be/internal/apperrors"
	"conote-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkService(f *fakeFactory) IBookmarkService {
	return NewBookmarkService(f, access.NewEvaluator(f))
}

func TestBookmarkCreateOnVisibleNote(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	reader := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Shared")
	seedGrant(f, notebook.Id, reader.Id)
	note := seedNote(f, notebook.Id, "Interesting", 1)

	resp, err := svc.Create(context.Background(), principalOf(reader), &dto.CreateBookmarkRequest{
		Name:   "read later",
		NoteId: note.Id,
	})
	require.NoError(t, err)

	require.Len(t, f.store.bookmarks, 1)
	assert.Equal(t, resp.Id, f.store.bookmarks[0].Id)
	// Ownership is forced to the caller regardless of payload.
	assert.Equal(t, reader.Id, f.store.bookmarks[0].UserId)
}

func TestBookmarkCreateOnInvisibleNoteIsInvalidReference(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	stranger := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Private")
	note := seedNote(f, notebook.Id, "Hidden", 1)

	_, err := svc.Create(context.Background(), principalOf(stranger), &dto.CreateBookmarkRequest{
		Name:   "nope",
		NoteId: note.Id,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, f.store.bookmarks)
}

func TestBookmarkListIsScopedToOwner(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	other := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")
	seedGrant(f, notebook.Id, other.Id)
	note := seedNote(f, notebook.Id, "Note", 1)

	_, err := svc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "mine", NoteId: note.Id})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), principalOf(other), &dto.CreateBookmarkRequest{Name: "theirs", NoteId: note.Id})
	require.NoError(t, err)

	result, err := svc.GetAll(context.Background(), principalOf(owner), nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "mine", result[0].Name)
}

func TestBookmarkListFilteredByNotebook(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	first := seedNotebook(f, owner.Id, "First")
	second := seedNotebook(f, owner.Id, "Second")
	noteA := seedNote(f, first.Id, "A", 1)
	noteB := seedNote(f, second.Id, "B", 1)

	_, err := svc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "a", NoteId: noteA.Id})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "b", NoteId: noteB.Id})
	require.NoError(t, err)

	result, err := svc.GetAll(context.Background(), principalOf(owner), &first.Id)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "a", result[0].Name)
}

func TestBookmarkOfAnotherUserIsNotFound(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	other := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")
	seedGrant(f, notebook.Id, other.Id)
	note := seedNote(f, notebook.Id, "Note", 1)

	resp, err := svc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "mine", NoteId: note.Id})
	require.NoError(t, err)

	_, err = svc.Show(context.Background(), principalOf(other), resp.Id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = svc.Delete(context.Background(), principalOf(other), resp.Id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Len(t, f.store.bookmarks, 1)
}

func TestBookmarkUpdateRenames(t *testing.T) {
	f := newFakeFactory()
	svc := newBookmarkService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")
	note := seedNote(f, notebook.Id, "Note", 1)

	resp, err := svc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "old", NoteId: note.Id})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), principalOf(owner), &dto.UpdateBookmarkRequest{Id: resp.Id, Name: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", f.store.bookmarks[0].Name)
}
