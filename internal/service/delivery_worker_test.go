package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"conote-be/internal/dto"
	"conote-be/internal/pkg/messenger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu    sync.Mutex
	sent  []dto.DeliveryTaskMessage
	fails bool
}

func (s *stubSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails {
		return errors.New("gateway unreachable")
	}
	s.sent = append(s.sent, dto.DeliveryTaskMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func publishTask(t *testing.T, bus IEventBusService, task dto.DeliveryTaskMessage) {
	t.Helper()
	raw, err := json.Marshal(task)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), TopicOutboundDelivery, raw))
}

func TestDeliveryWorkerRoutesTasksToTheirChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	email := &stubSender{}
	sms := &stubSender{}
	bus := NewEventBusService()
	defer bus.Close()

	worker := NewDeliveryWorker(bus, messenger.NewDispatcher(email, sms), nopLogger{})
	require.NoError(t, worker.Consume(ctx))

	publishTask(t, bus, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelEmail,
		To:      "alice@mail.test",
		Subject: "Notification",
		Body:    "hello",
	})
	publishTask(t, bus, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelSms,
		To:      "+628111",
		Body:    "hello",
	})

	require.Eventually(t, func() bool {
		return email.count() == 1 && sms.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "alice@mail.test", email.sent[0].To)
	assert.Equal(t, "Notification", email.sent[0].Subject)
	assert.Equal(t, "+628111", sms.sent[0].To)
}

func TestDeliveryWorkerDropsUnknownChannels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	email := &stubSender{}
	sms := &stubSender{}
	bus := NewEventBusService()
	defer bus.Close()

	worker := NewDeliveryWorker(bus, messenger.NewDispatcher(email, sms), nopLogger{})
	require.NoError(t, worker.Consume(ctx))

	publishTask(t, bus, dto.DeliveryTaskMessage{Channel: "pigeon", To: "roof"})
	publishTask(t, bus, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelEmail,
		To:      "alice@mail.test",
		Body:    "still flows",
	})

	// The bad task must not wedge the worker.
	require.Eventually(t, func() bool {
		return email.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, sms.count())
}

func TestDeliveryWorkerDoesNotRetryFailedSends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	email := &stubSender{fails: true}
	sms := &stubSender{}
	bus := NewEventBusService()
	defer bus.Close()

	worker := NewDeliveryWorker(bus, messenger.NewDispatcher(email, sms), nopLogger{})
	require.NoError(t, worker.Consume(ctx))

	publishTask(t, bus, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelEmail,
		To:      "alice@mail.test",
		Body:    "will fail",
	})
	publishTask(t, bus, dto.DeliveryTaskMessage{
		Channel: messenger.ChannelSms,
		To:      "+628111",
		Body:    "next one",
	})

	// The failed email is dropped; the queue moves on.
	require.Eventually(t, func() bool {
		return sms.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, email.count())
}
