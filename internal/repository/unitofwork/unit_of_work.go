package unitofwork

import (
	"context"

	"conote-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotebookRepository() contract.NotebookRepository
	NotebookGrantRepository() contract.NotebookGrantRepository
	NoteRepository() contract.NoteRepository
	BookmarkRepository() contract.BookmarkRepository
	CommentRepository() contract.CommentRepository
	NotificationRepository() contract.NotificationRepository
}
