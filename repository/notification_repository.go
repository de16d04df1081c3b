package repository

import (
	"context"
	"errors"
	"fmt"

	"backendjobs/database"
	"backendjobs/models"

	"github.com/jackc/pgx/v5"
)

// NotificationRepository implements the NotificationRepository interface
type NotificationRepository struct {
	q queryable
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{q: db.Pool}
}

func newNotificationRepositoryWithTx(tx queryable) *NotificationRepository {
	return &NotificationRepository{q: tx}
}

// Create stores a notification and its target. Callers run it inside a
// unit of work so both rows land together.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, title, message, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.Title, n.Message, n.CreatedAt, n.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create notification %s: %w", n.ID, err)
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO notification_targets (notification_id, type, target, status)
		VALUES ($1, $2, $3, $4)
	`, n.ID, n.TargetType, n.Target, n.Status)
	if err != nil {
		return fmt.Errorf("failed to create target for notification %s: %w", n.ID, err)
	}

	return nil
}

// GetByID retrieves a notification with its target
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	query := `
		SELECT n.id, n.title, n.message, n.created_at, n.created_by, t.type, t.target, t.status
		FROM notifications n
		JOIN notification_targets t ON t.notification_id = n.id
		WHERE n.id = $1
	`

	var n models.Notification
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Title,
		&n.Message,
		&n.CreatedAt,
		&n.CreatedBy,
		&n.TargetType,
		&n.Target,
		&n.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification %s: %w", id, err)
	}

	return &n, nil
}
