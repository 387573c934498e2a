package repository

import (
	"context"

	"founder-match/internal/database"
	"founder-match/internal/domain/message"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	// ListByMatch returns the conversation oldest first.
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]message.Message, error)
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error)
	// MarkMatchRead flags the messages of one match addressed to receiverID.
	MarkMatchRead(ctx context.Context, matchID, receiverID uuid.UUID) (int64, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (id, match_id, sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, m.ID, m.MatchID, m.SenderID, m.ReceiverID, m.Content, m.Read).Scan(&m.CreatedAt)
	if err != nil {
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, match_id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE`, receiverID).Scan(&n)
	return n, err
}

func (r *PostgresMessageRepository) MarkMatchRead(ctx context.Context, matchID, receiverID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE match_id = $1 AND receiver_id = $2 AND is_read = FALSE
	`, matchID, receiverID)
}
