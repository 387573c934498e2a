package usecase

import (
	"context"
	"errors"
	"fmt"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageUsecase interface {
	Conversation(ctx context.Context, userID, matchID uuid.UUID) ([]message.Message, error)
	Send(ctx context.Context, userID, matchID uuid.UUID, content string) (message.Message, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, matchID uuid.UUID) (int64, error)
}

// MessageService keeps the conversation of each match. Only the two users of
// a match may read or write it.
type MessageService struct {
	matches  repository.MatchRepository
	messages repository.MessageRepository
	logger   *zap.Logger
}

func NewMessageService(matches repository.MatchRepository, messages repository.MessageRepository, log *zap.Logger) *MessageService {
	return &MessageService{matches: matches, messages: messages, logger: logger.OrNop(log)}
}

func (s *MessageService) Conversation(ctx context.Context, userID, matchID uuid.UUID) ([]message.Message, error) {
	if _, err := s.participantMatch(ctx, userID, matchID); err != nil {
		return nil, err
	}
	out, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

// Send addresses the message to the other party of the match. A match either
// side rejected is closed to new messages.
func (s *MessageService) Send(ctx context.Context, userID, matchID uuid.UUID, content string) (message.Message, error) {
	body, err := message.NormalizeContent(content)
	if err != nil {
		if errors.Is(err, message.ErrContentTooLong) {
			return message.Message{}, ErrMessageTooLong
		}
		return message.Message{}, ErrMessageRequired
	}

	m, err := s.participantMatch(ctx, userID, matchID)
	if err != nil {
		return message.Message{}, err
	}
	if m.Status == match.StatusRejected {
		return message.Message{}, ErrMatchClosed
	}
	receiver, _ := m.OtherUser(userID)

	saved, err := s.messages.Create(ctx, message.Message{
		MatchID:    m.ID,
		SenderID:   userID,
		ReceiverID: receiver,
		Content:    body,
	})
	if err != nil {
		return message.Message{}, fmt.Errorf("save message: %w", err)
	}
	s.logger.Debug("message sent",
		zap.String("match_id", m.ID.String()),
		zap.String("sender_id", userID.String()),
	)
	return saved, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

// MarkRead flags every message of the match addressed to the caller.
func (s *MessageService) MarkRead(ctx context.Context, userID, matchID uuid.UUID) (int64, error) {
	if _, err := s.participantMatch(ctx, userID, matchID); err != nil {
		return 0, err
	}
	n, err := s.messages.MarkMatchRead(ctx, matchID, userID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	return n, nil
}

func (s *MessageService) participantMatch(ctx context.Context, userID, matchID uuid.UUID) (match.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, fmt.Errorf("load match: %w", err)
	}
	if !m.Has(userID) {
		return match.Match{}, ErrNotMatchParticipant
	}
	return m, nil
}
