package match

import (
	"errors"
	"strings"
	"time"

	"founder-match/internal/domain/matching"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionAccept Action = "ACCEPT"
	ActionReject Action = "REJECT"
)

var ErrInvalidAction = errors.New("invalid match action")

func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(raw))) {
	case ActionAccept:
		return ActionAccept, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", ErrInvalidAction
	}
}

func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject
}

func (a Action) status() Status {
	if a == ActionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

// Slot identifies which canonical position a user holds on a match.
type Slot int

const (
	SlotNone Slot = iota
	SlotUser1
	SlotUser2
)

var (
	ErrSelfMatch      = errors.New("a match needs two distinct users")
	ErrNotParticipant = errors.New("user is not a party to this match")
)

type Match struct {
	ID          uuid.UUID
	User1ID     uuid.UUID
	User2ID     uuid.UUID
	Score       int
	Breakdown   matching.Breakdown
	StatusUser1 Status
	StatusUser2 Status
	Status      Status
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanonicalPair orders two user ids by their string form so a pair has one
// stored representation no matter which side created it.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}

func New(a, b uuid.UUID, sc matching.Score) (Match, error) {
	if a == b || a == uuid.Nil || b == uuid.Nil {
		return Match{}, ErrSelfMatch
	}
	u1, u2 := CanonicalPair(a, b)
	now := time.Now().UTC()
	return Match{
		ID:          uuid.New(),
		User1ID:     u1,
		User2ID:     u2,
		Score:       sc.Total,
		Breakdown:   sc.Breakdown,
		StatusUser1: StatusPending,
		StatusUser2: StatusPending,
		Status:      StatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (m Match) SlotOf(userID uuid.UUID) Slot {
	switch userID {
	case m.User1ID:
		return SlotUser1
	case m.User2ID:
		return SlotUser2
	default:
		return SlotNone
	}
}

func (m Match) Has(userID uuid.UUID) bool {
	return m.SlotOf(userID) != SlotNone
}

func (m Match) OtherUser(userID uuid.UUID) (uuid.UUID, bool) {
	switch m.SlotOf(userID) {
	case SlotUser1:
		return m.User2ID, true
	case SlotUser2:
		return m.User1ID, true
	default:
		return uuid.Nil, false
	}
}

// StatusesFor returns the caller's own decision and the counterpart's.
func (m Match) StatusesFor(userID uuid.UUID) (mine Status, other Status, ok bool) {
	switch m.SlotOf(userID) {
	case SlotUser1:
		return m.StatusUser1, m.StatusUser2, true
	case SlotUser2:
		return m.StatusUser2, m.StatusUser1, true
	default:
		return "", "", false
	}
}

// DeriveStatus computes the overall status from both decisions: mutual
// acceptance wins, any rejection otherwise dominates.
func DeriveStatus(s1, s2 Status) Status {
	if s1 == StatusAccepted && s2 == StatusAccepted {
		return StatusAccepted
	}
	if s1 == StatusRejected || s2 == StatusRejected {
		return StatusRejected
	}
	return StatusPending
}

// Apply records one user's decision and recomputes the overall status. A slot
// that has rejected stays rejected. It reports whether anything changed.
func (m *Match) Apply(slot Slot, a Action) (bool, error) {
	if !a.Valid() {
		return false, ErrInvalidAction
	}

	var field *Status
	switch slot {
	case SlotUser1:
		field = &m.StatusUser1
	case SlotUser2:
		field = &m.StatusUser2
	default:
		return false, ErrNotParticipant
	}

	before := *m
	if *field != StatusRejected {
		*field = a.status()
	}
	m.Status = DeriveStatus(m.StatusUser1, m.StatusUser2)

	return before.StatusUser1 != m.StatusUser1 ||
		before.StatusUser2 != m.StatusUser2 ||
		before.Status != m.Status, nil
}
