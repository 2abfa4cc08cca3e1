package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookmarkRequest struct {
	Name   string    `json:"name" validate:"required,max=255"`
	NoteId uuid.UUID `json:"note" validate:"required"`
}

type CreateBookmarkResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateBookmarkRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateBookmarkResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowBookmarkResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NoteId    uuid.UUID `json:"note"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
