package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"
	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type memMessageRepo struct {
	mu    sync.Mutex
	items []message.Message
}

func (r *memMessageRepo) Create(_ context.Context, m message.Message) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now().UTC()
	r.items = append(r.items, m)
	return m, nil
}

func (r *memMessageRepo) ListByMatch(_ context.Context, matchID uuid.UUID) ([]message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]message.Message, 0)
	for _, m := range r.items {
		if m.MatchID == matchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) CountUnread(_ context.Context, receiverID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.items {
		if m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) MarkMatchRead(_ context.Context, matchID, receiverID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if r.items[i].MatchID == matchID && r.items[i].ReceiverID == receiverID && !r.items[i].Read {
			r.items[i].Read = true
			n++
		}
	}
	return n, nil
}

func newMessageFixture(t *testing.T) (*MessageService, *memMatchRepo, match.Match) {
	t.Helper()
	a := newProfile(profile.IndustryTech, 20, 4)
	b := newProfile(profile.IndustryTech, 20, 4)
	matches := newMemMatchRepo()
	m := createMatch(t, matches, a.UserID, b.UserID, 70)
	return NewMessageService(matches, &memMessageRepo{}, nil), matches, m
}

func TestMessageService_SendDerivesReceiver(t *testing.T) {
	svc, _, m := newMessageFixture(t)
	ctx := context.Background()

	sent, err := svc.Send(ctx, m.User2ID, m.ID, "  hello co-founder  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sent.ReceiverID != m.User1ID || sent.SenderID != m.User2ID {
		t.Fatalf("expected receiver to be the other party, got %+v", sent)
	}
	if sent.Content != "hello co-founder" {
		t.Fatalf("expected trimmed content, got %q", sent.Content)
	}

	n, err := svc.UnreadCount(ctx, m.User1ID)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 unread for receiver, got %d err=%v", n, err)
	}
	if n, _ := svc.UnreadCount(ctx, m.User2ID); n != 0 {
		t.Fatalf("sender should have no unread, got %d", n)
	}

	updated, err := svc.MarkRead(ctx, m.User1ID, m.ID)
	if err != nil || updated != 1 {
		t.Fatalf("expected 1 marked read, got %d err=%v", updated, err)
	}
	if n, _ := svc.UnreadCount(ctx, m.User1ID); n != 0 {
		t.Fatalf("expected 0 unread after mark read, got %d", n)
	}
}

func TestMessageService_ConversationInOrder(t *testing.T) {
	svc, _, m := newMessageFixture(t)
	ctx := context.Background()

	for i, body := range []string{"hi", "hey", "let's talk"} {
		from := m.User1ID
		if i%2 == 1 {
			from = m.User2ID
		}
		if _, err := svc.Send(ctx, from, m.ID, body); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	conv, err := svc.Conversation(ctx, m.User2ID, m.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(conv) != 3 || conv[0].Content != "hi" || conv[2].Content != "let's talk" {
		t.Fatalf("unexpected conversation %+v", conv)
	}
}

func TestMessageService_Authorization(t *testing.T) {
	svc, _, m := newMessageFixture(t)
	ctx := context.Background()
	stranger := uuid.New()

	if _, err := svc.Conversation(ctx, stranger, m.ID); !errors.Is(err, ErrNotMatchParticipant) || !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for a non-party, got %v", err)
	}
	if _, err := svc.Send(ctx, stranger, m.ID, "hi"); !errors.Is(err, ErrNotMatchParticipant) {
		t.Fatalf("expected forbidden send for a non-party, got %v", err)
	}
	if _, err := svc.MarkRead(ctx, stranger, m.ID); !errors.Is(err, ErrNotMatchParticipant) {
		t.Fatalf("expected forbidden mark read for a non-party, got %v", err)
	}
	if _, err := svc.Conversation(ctx, m.User1ID, uuid.New()); !errors.Is(err, ErrMatchNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for a missing match, got %v", err)
	}
}

func TestMessageService_SendValidation(t *testing.T) {
	svc, _, m := newMessageFixture(t)
	ctx := context.Background()

	if _, err := svc.Send(ctx, m.User1ID, m.ID, "   "); !errors.Is(err, ErrMessageRequired) || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected required content error, got %v", err)
	}
	long := strings.Repeat("x", message.MaxContentLength+1)
	if _, err := svc.Send(ctx, m.User1ID, m.ID, long); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected too long error, got %v", err)
	}
}

func TestMessageService_RejectedMatchIsClosed(t *testing.T) {
	svc, matches, m := newMessageFixture(t)
	ctx := context.Background()

	lc := NewMatchLifecycle(matches, nil, nil, nil, nil)
	if _, err := lc.Act(ctx, m.User1ID, m.ID, match.ActionReject); err != nil {
		t.Fatalf("act: %v", err)
	}

	if _, err := svc.Send(ctx, m.User2ID, m.ID, "still there?"); !errors.Is(err, ErrMatchClosed) {
		t.Fatalf("expected closed match error, got %v", err)
	}
	if _, err := svc.Conversation(ctx, m.User2ID, m.ID); err != nil {
		t.Fatalf("history should stay readable, got %v", err)
	}
}
