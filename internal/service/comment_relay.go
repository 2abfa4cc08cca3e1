package service

import (
	"context"
	"encoding/json"

	"conote-be/internal/dto"
	"conote-be/internal/pkg/logger"
	"conote-be/pkg/events"
	pktNats "conote-be/pkg/nats"

	"github.com/google/uuid"
)

// CommentRelay re-injects COMMENT_CREATED events published by other
// instances into the local bus, so websocket delivery works across a
// cluster without Redis. The NATS subscriber already filters out events
// this instance published itself.
type CommentRelay struct {
	subscriber *pktNats.Subscriber
	eventBus   IEventBusService
	log        logger.ILogger
}

func NewCommentRelay(subscriber *pktNats.Subscriber, eventBus IEventBusService, log logger.ILogger) *CommentRelay {
	return &CommentRelay{
		subscriber: subscriber,
		eventBus:   eventBus,
		log:        log,
	}
}

func (r *CommentRelay) Start(instanceId string) error {
	if r.subscriber == nil {
		return nil
	}

	durable := "comment-relay-" + instanceId
	return r.subscriber.Subscribe("events."+TopicCommentCreated, durable, func(ctx context.Context, evt events.Event) error {
		data := evt.Payload()

		ownerId, err := uuid.Parse(stringField(data, "notebook_owner_id"))
		if err != nil {
			r.log.Warn("CommentRelay", "Event without a valid owner id", map[string]interface{}{
				"error": err.Error(),
			})
			return nil
		}

		payload := dto.CommentCreatedMessage{
			NotebookOwnerId: ownerId,
			Commenter:       stringField(data, "commenter"),
			NoteTitle:       stringField(data, "note_title"),
			OriginInstance:  stringField(data, "origin_instance"),
		}
		if commentId, err := uuid.Parse(stringField(data, "comment_id")); err == nil {
			payload.CommentId = commentId
		}

		payloadJson, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		return r.eventBus.Publish(ctx, TopicCommentCreated, payloadJson)
	})
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
