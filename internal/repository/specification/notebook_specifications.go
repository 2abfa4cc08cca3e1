package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedOrGranted limits notebooks to those the user owns or holds a view
// grant on. GrantedIDs is resolved from notebook_grants beforehand so the
// predicate stays a plain WHERE clause.
type OwnedOrGranted struct {
	UserID     uuid.UUID
	GrantedIDs []uuid.UUID
}

func (s OwnedOrGranted) Apply(db *gorm.DB) *gorm.DB {
	if len(s.GrantedIDs) == 0 {
		return db.Where("user_id = ?", s.UserID)
	}
	return db.Where("user_id = ? OR id IN ?", s.UserID, s.GrantedIDs)
}

// NotArchived filters out archived notebooks.
type NotArchived struct{}

func (s NotArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("archived_at IS NULL")
}
