package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type CreateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowNotebookResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	UserId      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

type UpdateNotebookRequest struct {
	Id          uuid.UUID
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type AssignPermRequest struct {
	Id   uuid.UUID
	User uuid.UUID `json:"user" validate:"required"`
}

type RemovePermRequest struct {
	Id   uuid.UUID
	User uuid.UUID `json:"user" validate:"required"`
}
