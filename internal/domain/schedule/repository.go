package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error

	// IsReferenced reports whether any worker or assignment row still
	// points at the schedule. Checked before deletion.
	IsReferenced(ctx context.Context, id string) (bool, error)
}

type AssignmentRepository interface {
	// Create appends one immutable history row. Assignments are never
	// updated or deleted individually.
	Create(ctx context.Context, workerID, scheduleID string, effectiveFrom time.Time) (Assignment, error)
	ListByWorker(ctx context.Context, workerID string) ([]Assignment, error)
}
