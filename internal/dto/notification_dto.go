package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShowNotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	Content   string                 `json:"content"`
	Type      string                 `json:"type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
