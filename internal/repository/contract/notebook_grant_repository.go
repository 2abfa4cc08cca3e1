package contract

import (
	"context"

	"conote-be/internal/entity"
	"conote-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotebookGrantRepository interface {
	Create(ctx context.Context, grant *entity.NotebookGrant) error
	// DeleteAllByPair removes every grant row for the (notebook, user) pair.
	// Removing a pair that holds no grant is a no-op, not an error.
	DeleteAllByPair(ctx context.Context, notebookId, userId uuid.UUID) error
	DeleteAllByNotebookId(ctx context.Context, notebookId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotebookGrant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
