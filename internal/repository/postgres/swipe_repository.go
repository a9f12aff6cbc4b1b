package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/linkora-app/linkora-backend/internal/domain"
	"github.com/linkora-app/linkora-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

// Upsert keeps exactly one row per (actor, target); a repeated swipe
// overwrites the prior action and status.
func (r *swipeRepository) Upsert(ctx context.Context, decision *domain.SwipeDecision) error {
	query := `
		INSERT INTO swipe_decisions (actor_id, target_id, action, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (actor_id, target_id)
		DO UPDATE SET action = EXCLUDED.action, status = EXCLUDED.status,
		              updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		decision.ActorID, decision.TargetID, decision.Action, decision.Status,
	).Scan(&decision.ID, &decision.CreatedAt, &decision.UpdatedAt)
}

func (r *swipeRepository) GetByUsers(ctx context.Context, actorID, targetID int) (*domain.SwipeDecision, error) {
	var decision domain.SwipeDecision
	query := `SELECT * FROM swipe_decisions WHERE actor_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &decision, query, actorID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &decision, nil
}

func (r *swipeRepository) ConfirmPairTx(ctx context.Context, tx *sqlx.Tx, userA, userB int) error {
	query := `
		UPDATE swipe_decisions
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE (actor_id = $2 AND target_id = $3)
		   OR (actor_id = $3 AND target_id = $2)
	`
	result, err := tx.ExecContext(ctx, query, domain.StatusConfirmed, userA, userB)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows != 2 {
		return errors.New("mutual match promotion did not update both decisions")
	}
	return nil
}

func (r *swipeRepository) SwipedTargetIDs(ctx context.Context, actorID int, includeSaved bool) ([]int, error) {
	query := `SELECT target_id FROM swipe_decisions WHERE actor_id = $1`
	if !includeSaved {
		query += ` AND status <> 'saved'`
	}
	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, actorID)
	return ids, err
}

func (r *swipeRepository) GetSavedTargets(ctx context.Context, actorID int, limit, offset int) ([]*domain.SwipeDecision, error) {
	var decisions []*domain.SwipeDecision
	query := `
		SELECT * FROM swipe_decisions
		WHERE actor_id = $1 AND status = 'saved'
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &decisions, query, actorID, limit, offset)
	return decisions, err
}
