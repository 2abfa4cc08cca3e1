// Package messenger delivers outbound notifications. A Dispatcher hands out
// channel-specific Senders; asking for an unknown channel is a programming
// error surfaced as ErrInvalidChannel.
package messenger

const (
	ChannelEmail = "email"
	ChannelSms   = "sms"
)

// Sender delivers a single message over one channel. Subject may be ignored
// by channels that have no notion of one.
type Sender interface {
	Send(to, subject, body string) error
}
