package justification

import (
	"context"
	"time"
)

type JustificationRepository interface {
	Create(ctx context.Context, j Justification) (Justification, error)
	GetByID(ctx context.Context, id string) (Justification, error)

	// GetByWorkerAndDate returns nil when no justification exists for the
	// (worker, calendar date) pair.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*Justification, error)

	ListByWorkerBetween(ctx context.Context, workerID string, start, end time.Time) ([]Justification, error)
	List(ctx context.Context, filter JustificationFilter) ([]Justification, int64, error)
	Delete(ctx context.Context, id string) error
}

type ReasonRuleRepository interface {
	Create(ctx context.Context, rule ReasonRule) (ReasonRule, error)
	GetByID(ctx context.Context, id string) (ReasonRule, error)
	List(ctx context.Context) ([]ReasonRule, error)
	Update(ctx context.Context, rule ReasonRule) error
	Delete(ctx context.Context, id string) error
	IsReferenced(ctx context.Context, id string) (bool, error)
}
