package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores outbound message records. Rows are created by the
// permission grant/revoke operations; delivery routing happens off a
// NOTIFICATION_CREATED event, never inline with the request.
type Notification struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	Content   string         `gorm:"type:text;not null"`
	Type      string         `gorm:"type:varchar(10);not null"` // INFO | WARNING
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_notifications_user_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}
