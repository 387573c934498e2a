package dto

import (
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/matching"

	"github.com/google/uuid"
)

// MatchResponse is a match as seen by the caller after acting on it.
type MatchResponse struct {
	ID          uuid.UUID          `json:"id"`
	Score       int                `json:"score"`
	Breakdown   matching.Breakdown `json:"breakdown"`
	Status      match.Status       `json:"status"`
	MyStatus    match.Status       `json:"my_status"`
	OtherStatus match.Status       `json:"other_status"`
	OtherUserID uuid.UUID          `json:"other_user_id"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func NewMatchResponse(m match.Match, viewer uuid.UUID) MatchResponse {
	mine, other, _ := m.StatusesFor(viewer)
	otherID, _ := m.OtherUser(viewer)
	return MatchResponse{
		ID:          m.ID,
		Score:       m.Score,
		Breakdown:   m.Breakdown,
		Status:      m.Status,
		MyStatus:    mine,
		OtherStatus: other,
		OtherUserID: otherID,
		UpdatedAt:   m.UpdatedAt,
	}
}
