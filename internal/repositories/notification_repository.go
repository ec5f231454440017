package repositories

import (
	"context"
	"database/sql"

	"panal/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, message, read, created_at)
		VALUES ($1,$2,false,NOW())
		RETURNING id, created_at`,
		n.UserID, n.Message,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	n := &models.Notification{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, message, read, created_at
		FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, read, created_at FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read=true WHERE id=$1`, id)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read=true WHERE user_id=$1`, userID)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}
