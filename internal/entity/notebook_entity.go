package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id          uuid.UUID
	Title       string
	Description string
	UserId      uuid.UUID // Owner
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ArchivedAt  *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// NotebookGrant is an explicit "view" permission record allowing a
// non-owner user read access to a notebook. Repeated grants for the same
// (user, notebook) pair are not deduplicated.
type NotebookGrant struct {
	Id         uuid.UUID
	NotebookId uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
}
