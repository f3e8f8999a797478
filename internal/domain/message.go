package domain

import (
	"errors"
	"time"
)

const MaxMessageLen = 500

var (
	ErrMessageEmpty   = errors.New("message empty")
	ErrMessageTooLong = errors.New("message too long")
)

// Message is transient: it exists only for the duration of a broadcast
// and is never stored. The timestamp is assigned server-side at send
// time so recipients are not exposed to sender clock skew.
type Message struct {
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func ValidateMessageText(text string) error {
	if len(text) == 0 {
		return ErrMessageEmpty
	}
	if len(text) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}
