package contract

import (
	"context"

	"conote-be/internal/entity"
	"conote-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) error
	Update(ctx context.Context, bookmark *entity.Bookmark) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByNoteIds(ctx context.Context, noteIds []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Bookmark, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
