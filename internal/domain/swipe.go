package domain

import (
	"strings"
	"time"
)

type SwipeAction string

const (
	ActionLike SwipeAction = "like"
	ActionPass SwipeAction = "pass"
	ActionSave SwipeAction = "save"
)

func ParseSwipeAction(s string) (SwipeAction, bool) {
	switch SwipeAction(strings.ToLower(strings.TrimSpace(s))) {
	case ActionLike:
		return ActionLike, true
	case ActionPass:
		return ActionPass, true
	case ActionSave:
		return ActionSave, true
	}
	return "", false
}

type SwipeStatus string

const (
	StatusPending   SwipeStatus = "pending"
	StatusPassed    SwipeStatus = "passed"
	StatusSaved     SwipeStatus = "saved"
	StatusConfirmed SwipeStatus = "confirmed"
)

// Status maps an action to the stored decision status. A like stays
// pending until a reciprocal like promotes both rows to confirmed.
func (a SwipeAction) Status() SwipeStatus {
	switch a {
	case ActionLike:
		return StatusPending
	case ActionPass:
		return StatusPassed
	case ActionSave:
		return StatusSaved
	}
	return StatusPassed
}

// SwipeDecision is unique per (actor, target); a later action overwrites the
// stored row rather than appending.
type SwipeDecision struct {
	ID        int         `json:"id" db:"id"`
	ActorID   int         `json:"actor_id" db:"actor_id"`
	TargetID  int         `json:"target_id" db:"target_id"`
	Action    SwipeAction `json:"action" db:"action"`
	Status    SwipeStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
