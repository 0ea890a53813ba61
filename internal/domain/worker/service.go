package worker

import "context"

type WorkerService interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetWorker(ctx context.Context, id string) (WorkerResponse, error)
	ListWorkers(ctx context.Context, filter WorkerFilter) (ListWorkersResponse, error)

	// UpdateWorker applies a typed patch. A schedule change appends an
	// immutable assignment-history row in the same transaction.
	UpdateWorker(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)

	DeactivateWorker(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
}
