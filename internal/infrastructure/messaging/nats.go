// Package messaging wraps the NATS connection used for realtime notification
// fan-out. Notification rows are committed to Postgres first; the bus only
// carries post-commit insert events to connected stream consumers.
package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linkora-app/linkora-backend/internal/config"
	"github.com/linkora-app/linkora-backend/internal/domain"
)

// SubjectNotify is the per-user notification subject prefix: notify.<user_id>.
const SubjectNotify = "notify"

type NotificationBus struct {
	conn *nats.Conn
	log  *slog.Logger
}

func NewNotificationBus(cfg *config.NATSConfig, log *slog.Logger) (*NotificationBus, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NotificationBus{conn: nc, log: log}, nil
}

func subjectFor(userID int) string {
	return fmt.Sprintf("%s.%d", SubjectNotify, userID)
}

// Publish pushes a notification insert event for its owner. Failures are
// reported to the caller but never block the write path that produced the row.
func (b *NotificationBus) Publish(n *domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := b.conn.Publish(subjectFor(n.UserID), data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Subscribe delivers notification inserts for userID to handler until the
// returned unsubscribe function is called.
func (b *NotificationBus) Subscribe(userID int, handler func(*domain.Notification)) (func(), error) {
	sub, err := b.conn.Subscribe(subjectFor(userID), func(msg *nats.Msg) {
		var n domain.Notification
		if err := json.Unmarshal(msg.Data, &n); err != nil {
			b.log.Warn("drop malformed notification event", "error", err)
			return
		}
		handler(&n)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe notifications: %w", err)
	}

	return func() { _ = sub.Unsubscribe() }, nil
}

func (b *NotificationBus) Close() {
	if b.conn != nil {
		_ = b.conn.Drain()
	}
}
