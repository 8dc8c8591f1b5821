package repositories

import (
	"context"
	"time"

	"bizdel/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	// Create assigns the id and creation time; new notifications start unread.
	Create(ctx context.Context, notification *models.Notification) error
	// ListByUser returns the feed newest-first, ties broken by id so the
	// order is deterministic.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	// MarkRead flips the read flag and reports whether the record existed.
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepo(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = uuid.New()
	notification.IsRead = false
	notification.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.IsRead, notification.CreatedAt)
	return err
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
