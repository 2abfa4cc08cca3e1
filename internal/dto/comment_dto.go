package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Content string    `json:"content" validate:"required"`
	NoteId  uuid.UUID `json:"note" validate:"required"`
}

type CreateCommentResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCommentRequest struct {
	Id      uuid.UUID
	Content string `json:"content" validate:"required"`
}

type UpdateCommentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowCommentResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	NoteId    uuid.UUID `json:"note"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
