package repository

import (
	"context"
	"errors"

	"founder-match/internal/database"
	"founder-match/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	// MarkRead only touches notifications owned by userID.
	MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, type, is_read, related_id, created_at`

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Type == "" {
		n.Type = notification.TypeSystem
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, related_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, n.ID, n.UserID, n.Title, n.Message, string(n.Type), n.Read, n.RelatedID).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *PostgresNotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&n)
	return n, err
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING `+notificationColumns, id, userID)
	n, err := scanNotification(row)
	if err != nil {
		if isNoRows(err) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
}

func scanNotification(row database.Row) (notification.Notification, error) {
	var (
		n   notification.Notification
		typ string
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &n.Read, &n.RelatedID, &n.CreatedAt); err != nil {
		return notification.Notification{}, err
	}
	n.Type = notification.Type(typ)
	return n, nil
}
