package service

import (
	"context"
	"encoding/json"
	"fmt"

	"conote-be/internal/dto"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
)

type ICommentBroadcaster interface {
	Consume(ctx context.Context) error
}

// commentBroadcaster pushes a short alert to the notebook owner's live
// websocket connections when someone comments on one of their notes.
// At most once: owners with no open connection simply miss it.
type commentBroadcaster struct {
	eventBus IEventBusService
	hub      *websocket.Hub
	log      logger.ILogger
}

func NewCommentBroadcaster(
	eventBus IEventBusService,
	hub *websocket.Hub,
	log logger.ILogger,
) ICommentBroadcaster {
	return &commentBroadcaster{
		eventBus: eventBus,
		hub:      hub,
		log:      log,
	}
}

func (b *commentBroadcaster) Consume(ctx context.Context) error {
	messages, err := b.eventBus.Subscribe(ctx, TopicCommentCreated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.processMessage(msg)
		}
	}()

	return nil
}

func (b *commentBroadcaster) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload dto.CommentCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		b.log.Error("CommentBroadcaster", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	b.hub.SendToUser(payload.NotebookOwnerId, "comment_alert", map[string]interface{}{
		"message": fmt.Sprintf("%s commented on %s", payload.Commenter, payload.NoteTitle),
	})
}
