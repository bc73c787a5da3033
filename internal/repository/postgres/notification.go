package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attrs, err := json.Marshal(note.Attributes)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	query := `INSERT INTO notifications (customer_id, title, message, is_read, attributes, created_at)
		VALUES ($1, $2, $3, false, $4, NOW()) RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query, note.CustomerID, note.Title, note.Message, attrs).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return &domain.DependencyError{Dependency: "database", Err: err}
	}
	return nil
}
