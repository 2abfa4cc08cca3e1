package entity

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id        uuid.UUID
	NoteId    uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
