package message

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxContentLength = 2000

var (
	ErrEmptyContent   = errors.New("message content required")
	ErrContentTooLong = errors.New("message content too long")
)

// Message is one line of the conversation attached to a match. The receiver is
// always the other party of that match.
type Message struct {
	ID         uuid.UUID `json:"id"`
	MatchID    uuid.UUID `json:"match_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeContent trims the body and enforces the length bounds.
func NormalizeContent(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(s) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return s, nil
}
