package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "INFO"
	NotificationTypeWarning NotificationType = "WARNING"
)

// Notification is a queued outbound message record. Creating one triggers
// the channel routing rule: WARNING goes out via SMS and email, everything
// goes out via email.
type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	Type      NotificationType
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
