package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notebook struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	ArchivedAt  *time.Time     `gorm:"index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Notebook) TableName() string {
	return "notebooks"
}

type NotebookGrant struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NotebookId uuid.UUID `gorm:"type:uuid;not null;index:idx_notebook_grants_pair,priority:1"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index:idx_notebook_grants_pair,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (NotebookGrant) TableName() string {
	return "notebook_grants"
}
