package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationMatch   NotificationType = "match"
	NotificationMessage NotificationType = "message"
	NotificationView    NotificationType = "view"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    int              `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	RelatedID *int             `json:"related_id,omitempty" db:"related_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
