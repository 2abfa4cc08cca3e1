package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics on the in-process bus.
const (
	TopicNotificationCreated = "NOTIFICATION_CREATED"
	TopicCommentCreated      = "COMMENT_CREATED"
	TopicOutboundDelivery    = "OUTBOUND_DELIVERY"
)

// IEventBusService is the in-process pub/sub the services publish domain
// events to. One instance is built in bootstrap and shared by publishers
// and subscribers.
type IEventBusService interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

type eventBusService struct {
	pubSub *gochannel.GoChannel
}

func NewEventBusService() IEventBusService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})

	return &eventBusService{pubSub: pubSub}
}

func (s *eventBusService) Publish(_ context.Context, topic string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(topic, msg)
}

func (s *eventBusService) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, topic)
}

func (s *eventBusService) Close() error {
	return s.pubSub.Close()
}
