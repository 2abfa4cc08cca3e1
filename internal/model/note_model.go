package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string    `gorm:"type:varchar(100);not null"`
	Content    string    `gorm:"type:text"`
	Placement  int       `gorm:"not null;default:0"`
	NotebookId uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
