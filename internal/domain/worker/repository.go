package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByEmail(ctx context.Context, email string) (Worker, error)
	List(ctx context.Context, filter WorkerFilter) ([]Worker, int64, error)

	// ListActive returns every active worker, optionally restricted to a
	// department. Used by the aggregator and the today view.
	ListActive(ctx context.Context, departmentID *string) ([]Worker, error)

	Update(ctx context.Context, w Worker) error

	// Deactivate soft-deletes; attendance history is never removed.
	Deactivate(ctx context.Context, id string) error
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
