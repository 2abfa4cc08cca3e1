package contract

import (
	"context"

	"conote-be/internal/entity"
	"conote-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByNoteIds(ctx context.Context, noteIds []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
