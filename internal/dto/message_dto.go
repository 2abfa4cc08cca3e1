package dto

import "github.com/google/uuid"

// Payloads carried over the in-process event bus. Kept flat so the NATS
// mirror can publish them unchanged.

type NotificationCreatedMessage struct {
	NotificationId uuid.UUID `json:"notification_id"`
	UserId         uuid.UUID `json:"user_id"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
}

type CommentCreatedMessage struct {
	CommentId       uuid.UUID `json:"comment_id"`
	NotebookOwnerId uuid.UUID `json:"notebook_owner_id"`
	Commenter       string    `json:"commenter"`
	NoteTitle       string    `json:"note_title"`
	OriginInstance  string    `json:"origin_instance"`
}

type DeliveryTaskMessage struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
