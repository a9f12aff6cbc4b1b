package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

type SwipeRepository interface {
	// Upsert stores the decision for (actor, target), overwriting any prior
	// action for the pair.
	Upsert(ctx context.Context, decision *domain.SwipeDecision) error
	GetByUsers(ctx context.Context, actorID, targetID int) (*domain.SwipeDecision, error)
	// ConfirmPairTx promotes both directions of (userA, userB) to confirmed
	// within the supplied transaction.
	ConfirmPairTx(ctx context.Context, tx *sqlx.Tx, userA, userB int) error
	// SwipedTargetIDs returns target ids the actor has already acted on,
	// optionally keeping saved targets out of the exclusion set.
	SwipedTargetIDs(ctx context.Context, actorID int, includeSaved bool) ([]int, error)
	GetSavedTargets(ctx context.Context, actorID int, limit, offset int) ([]*domain.SwipeDecision, error)
}
