package match

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated       EventType = "match.created"
	EventStatusChanged EventType = "match.status_changed"
)

// Event is the record published to the match event stream after a match is
// created or its overall status changes.
type Event struct {
	Type        EventType `json:"type"`
	MatchID     uuid.UUID `json:"match_id"`
	User1ID     uuid.UUID `json:"user1_id"`
	User2ID     uuid.UUID `json:"user2_id"`
	Score       int       `json:"score"`
	Status      Status    `json:"status"`
	StatusUser1 Status    `json:"status_user1"`
	StatusUser2 Status    `json:"status_user2"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, m Match) Event {
	return Event{
		Type:        t,
		MatchID:     m.ID,
		User1ID:     m.User1ID,
		User2ID:     m.User2ID,
		Score:       m.Score,
		Status:      m.Status,
		StatusUser1: m.StatusUser1,
		StatusUser2: m.StatusUser2,
		OccurredAt:  time.Now().UTC(),
	}
}
