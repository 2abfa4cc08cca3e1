package service

import (
	"context"
	"encoding/json"

	"conote-be/internal/dto"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/pkg/messenger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IDeliveryWorker interface {
	Consume(ctx context.Context) error
}

// deliveryWorker executes queued delivery tasks in the background. Sends
// are fire-and-forget: failures are logged and the task is dropped, nothing
// propagates back to the request that caused the notification.
type deliveryWorker struct {
	eventBus   IEventBusService
	dispatcher *messenger.Dispatcher
	log        logger.ILogger
}

func NewDeliveryWorker(
	eventBus IEventBusService,
	dispatcher *messenger.Dispatcher,
	log logger.ILogger,
) IDeliveryWorker {
	return &deliveryWorker{
		eventBus:   eventBus,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (w *deliveryWorker) Consume(ctx context.Context) error {
	messages, err := w.eventBus.Subscribe(ctx, TopicOutboundDelivery)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(msg)
		}
	}()

	return nil
}

func (w *deliveryWorker) processMessage(msg *message.Message) {
	// Tasks are acked up front, there are no retries.
	defer msg.Ack()

	var task dto.DeliveryTaskMessage
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		w.log.Error("DeliveryWorker", "Failed to unmarshal delivery task", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	sender, err := w.dispatcher.Sender(task.Channel)
	if err != nil {
		w.log.Error("DeliveryWorker", "Unknown delivery channel", map[string]interface{}{
			"channel": task.Channel,
			"error":   err.Error(),
		})
		return
	}

	if err := sender.Send(task.To, task.Subject, task.Body); err != nil {
		w.log.Error("DeliveryWorker", "Delivery failed", map[string]interface{}{
			"channel": task.Channel,
			"to":      task.To,
			"error":   err.Error(),
		})
		return
	}

	w.log.Info("DeliveryWorker", "Delivered", map[string]interface{}{
		"channel": task.Channel,
		"to":      task.To,
	})
}
