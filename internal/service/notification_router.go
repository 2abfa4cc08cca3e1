package service

import (
	"context"
	"encoding/json"

	"conote-be/internal/dto"
	"conote-be/internal/entity"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/pkg/messenger"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type INotificationRouter interface {
	Consume(ctx context.Context) error
}

// notificationRouter turns created notifications into delivery tasks.
// WARNING notifications additionally go out as SMS to the recipient's
// phone; every notification goes out as email.
type notificationRouter struct {
	eventBus   IEventBusService
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewNotificationRouter(
	eventBus IEventBusService,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) INotificationRouter {
	return &notificationRouter{
		eventBus:   eventBus,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (r *notificationRouter) Consume(ctx context.Context) error {
	messages, err := r.eventBus.Subscribe(ctx, TopicNotificationCreated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (r *notificationRouter) enqueue(ctx context.Context, task dto.DeliveryTaskMessage) {
	payload, err := json.Marshal(task)
	if err != nil {
		r.log.Error("NotificationRouter", "Failed to marshal delivery task", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := r.eventBus.Publish(ctx, TopicOutboundDelivery, payload); err != nil {
		r.log.Error("NotificationRouter", "Failed to enqueue delivery task", map[string]interface{}{
			"channel": task.Channel,
			"error":   err.Error(),
		})
	}
}

func (r *notificationRouter) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.NotificationCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		r.log.Error("NotificationRouter", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		r.log.Error("NotificationRouter", "Failed to load recipient", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	if user == nil {
		r.log.Warn("NotificationRouter", "Recipient no longer exists", map[string]interface{}{
			"user_id": payload.UserId,
		})
		msg.Ack()
		return
	}

	if payload.Type == string(entity.NotificationTypeWarning) && user.PhoneNumber != "" {
		r.enqueue(ctx, dto.DeliveryTaskMessage{
			Channel: messenger.ChannelSms,
			To:      user.PhoneNumber,
			Body:    payload.Content,
		})
	}

	r.enqueue(ctx, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelEmail,
		To:      user.Email,
		Subject: "Notification",
		Body:    payload.Content,
	})

	msg.Ack()
}
