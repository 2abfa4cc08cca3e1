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

func newNoteService(f *fakeFactory) INoteService {
	return NewNoteService(f, access.NewEvaluator(f))
}

func TestNoteGetAllRequiresNotebookFilter(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)
	user := seedUser(f, "alice", "alice@mail.test", "", false)

	_, err := svc.GetAll(context.Background(), principalOf(user), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "notebook is required")
}

func TestNoteGetAllUnknownNotebookLooksInaccessible(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)
	user := seedUser(f, "alice", "alice@mail.test", "", false)

	// Unknown ids answer exactly like existing-but-inaccessible ones, so a
	// caller cannot enumerate which notebook ids exist.
	unknown := newId()
	_, err := svc.GetAll(context.Background(), principalOf(user), &unknown)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestNoteGetAllWithoutAccessIsForbidden(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	stranger := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")

	_, err := svc.GetAll(context.Background(), principalOf(stranger), &notebook.Id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestNoteGetAllGrantHolderMayList(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	reader := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Shared")
	seedGrant(f, notebook.Id, reader.Id)
	seedNote(f, notebook.Id, "First", 1)
	seedNote(f, notebook.Id, "Second", 2)

	result, err := svc.GetAll(context.Background(), principalOf(reader), &notebook.Id)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestNoteCreateIntoGrantedNotebookIsRejected(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	reader := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Shared")
	seedGrant(f, notebook.Id, reader.Id)

	_, err := svc.Create(context.Background(), principalOf(reader), &dto.CreateNoteRequest{
		Title:      "Intruder",
		NotebookId: notebook.Id,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, f.store.notes)
}

func TestNoteCreateIntoOwnNotebook(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")

	resp, err := svc.Create(context.Background(), principalOf(owner), &dto.CreateNoteRequest{
		Title:      "Draft",
		Content:    "body",
		Placement:  3,
		NotebookId: notebook.Id,
	})
	require.NoError(t, err)

	require.Len(t, f.store.notes, 1)
	assert.Equal(t, resp.Id, f.store.notes[0].Id)
	assert.Equal(t, 3, f.store.notes[0].Placement)
}

func TestNoteShowVisibleThroughGrant(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	reader := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Shared")
	seedGrant(f, notebook.Id, reader.Id)
	note := seedNote(f, notebook.Id, "Visible", 1)

	resp, err := svc.Show(context.Background(), principalOf(reader), note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Visible", resp.Title)
}

func TestNoteShowOutsideVisibleSetIsNotFound(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	stranger := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")
	note := seedNote(f, notebook.Id, "Hidden", 1)

	_, err := svc.Show(context.Background(), principalOf(stranger), note.Id)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestNoteUpdateByGrantHolderIsForbidden(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	reader := seedUser(f, "bob", "bob@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Shared")
	seedGrant(f, notebook.Id, reader.Id)
	note := seedNote(f, notebook.Id, "Original", 1)

	_, err := svc.Update(context.Background(), principalOf(reader), &dto.UpdateNoteRequest{
		Id:    note.Id,
		Title: "Tampered",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	assert.Equal(t, "Original", f.store.notes[0].Title)
}

func TestNoteDeleteCascadesBookmarksAndComments(t *testing.T) {
	f := newFakeFactory()
	svc := newNoteService(f)

	owner := seedUser(f, "alice", "alice@mail.test", "", false)
	notebook := seedNotebook(f, owner.Id, "Mine")
	note := seedNote(f, notebook.Id, "Doomed", 1)
	other := seedNote(f, notebook.Id, "Kept", 2)

	bsvc := NewBookmarkService(f, access.NewEvaluator(f))
	_, err := bsvc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "a", NoteId: note.Id})
	require.NoError(t, err)
	_, err = bsvc.Create(context.Background(), principalOf(owner), &dto.CreateBookmarkRequest{Name: "b", NoteId: other.Id})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), principalOf(owner), note.Id))

	assert.Len(t, f.store.notes, 1)
	require.Len(t, f.store.bookmarks, 1)
	assert.Equal(t, other.Id, f.store.bookmarks[0].NoteId)
}
