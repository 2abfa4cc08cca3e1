package messenger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to      string
	subject string
	body    string
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.to = to
	r.subject = subject
	r.body = body
	return nil
}

func TestDispatcherResolvesKnownChannels(t *testing.T) {
	email := &recordingSender{}
	sms := &recordingSender{}
	d := NewDispatcher(email, sms)

	s, err := d.Sender(ChannelEmail)
	require.NoError(t, err)
	require.NoError(t, s.Send("user@example.com", "hi", "body"))
	assert.Equal(t, "user@example.com", email.to)

	s, err = d.Sender(ChannelSms)
	require.NoError(t, err)
	require.NoError(t, s.Send("+620000000", "", "body"))
	assert.Equal(t, "+620000000", sms.to)
}

func TestDispatcherRejectsUnknownChannel(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, &recordingSender{})

	_, err := d.Sender("carrier-pigeon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChannel))
}
