package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// CreateTx inserts within an existing transaction so notification rows
	// commit atomically with the writes that caused them.
	CreateTx(ctx context.Context, tx *sqlx.Tx, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, userID int, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, userID int, id uuid.UUID) error
}
