package messenger

import (
	"errors"
	"fmt"
)

var ErrInvalidChannel = errors.New("invalid delivery channel")

// Dispatcher maps channel names to their Senders. Built once in bootstrap;
// the set of channels is fixed at construction.
type Dispatcher struct {
	senders map[string]Sender
}

func NewDispatcher(email Sender, sms Sender) *Dispatcher {
	return &Dispatcher{
		senders: map[string]Sender{
			ChannelEmail: email,
			ChannelSms:   sms,
		},
	}
}

func (d *Dispatcher) Sender(channel string) (Sender, error) {
	sender, ok := d.senders[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	return sender, nil
}
