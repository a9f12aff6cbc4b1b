package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

// Bus exposes the realtime notification feed for a single user.
type Bus interface {
	Subscribe(userID int, handler func(*domain.Notification)) (func(), error)
}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	bus              Bus
	log              *slog.Logger
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	bus Bus,
	log *slog.Logger,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		bus:              bus,
		log:              log,
	}
}

func (uc *NotificationUseCase) List(ctx context.Context, userID int, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	notifications, err := uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID int) (int, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID int, id uuid.UUID) error {
	return uc.notificationRepo.MarkRead(ctx, userID, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID int) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) Delete(ctx context.Context, userID int, id uuid.UUID) error {
	return uc.notificationRepo.Delete(ctx, userID, id)
}

// Stream delivers notification inserts for userID on the returned channel
// until ctx is done. The channel is closed on return.
func (uc *NotificationUseCase) Stream(ctx context.Context, userID int) (<-chan *domain.Notification, error) {
	if uc.bus == nil {
		return nil, fmt.Errorf("realtime notifications are not configured")
	}

	// The bus may still be invoking the handler when unsubscribe returns, so
	// the handler and the close of out are serialized through mu: once done
	// is set no delivery can reach the closed channel.
	out := make(chan *domain.Notification, 16)
	var mu sync.Mutex
	done := false

	unsubscribe, err := uc.bus.Subscribe(userID, func(n *domain.Notification) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		select {
		case out <- n:
		default:
			// A slow consumer drops events rather than blocking the bus; the
			// rows are still in the store.
			uc.log.Warn("notification stream buffer full", "user_id", userID)
		}
	})
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		done = true
		close(out)
		mu.Unlock()
	}()

	return out, nil
}
