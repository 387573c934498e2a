package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeMatch       Type = "MATCH"
	TypeApplication Type = "APPLICATION"
	TypeSystem      Type = "SYSTEM"
)

type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      Type       `json:"type"`
	Read      bool       `json:"read"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Notifier delivers a notification to a user. Implementations must not block
// the caller for long; failures are reported but never change domain state.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
