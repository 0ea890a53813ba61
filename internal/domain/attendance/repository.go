package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records. Records are
// append-only; Update exists solely for administrative corrections and
// justification reconciliation.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)

	// ListByWorkerAndDay returns a worker's records for one calendar day,
	// ordered by timestamp ascending.
	ListByWorkerAndDay(ctx context.Context, workerID string, day time.Time) ([]Record, error)

	// ListByWorkerBetween returns records for [start, end] inclusive,
	// ordered by timestamp ascending.
	ListByWorkerBetween(ctx context.Context, workerID string, start, end time.Time) ([]Record, error)

	// ListByDay returns every worker's records for one calendar day,
	// ordered by worker then timestamp.
	ListByDay(ctx context.Context, day time.Time) ([]Record, error)

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error

	// LockWorkerDay serializes concurrent check-ins for the same worker
	// and date. Must be called inside a transaction; the lock is released
	// at commit or rollback.
	LockWorkerDay(ctx context.Context, workerID string, day time.Time) error
}

type ToleranceRuleRepository interface {
	// List returns all rules ordered by MinMinutes ascending.
	List(ctx context.Context) ([]ToleranceRule, error)
	GetByID(ctx context.Context, id string) (ToleranceRule, error)
	Create(ctx context.Context, rule ToleranceRule) (ToleranceRule, error)
	Update(ctx context.Context, rule ToleranceRule) error
	Delete(ctx context.Context, id string) error
}
