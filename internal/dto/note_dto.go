package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title      string    `json:"title" validate:"required,max=255"`
	Content    string    `json:"content"`
	Placement  int       `json:"placement"`
	NotebookId uuid.UUID `json:"notebook" validate:"required"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowNoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Placement  int        `json:"placement"`
	NotebookId uuid.UUID  `json:"notebook"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type UpdateNoteRequest struct {
	Id        uuid.UUID
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content"`
	Placement int    `json:"placement"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}
