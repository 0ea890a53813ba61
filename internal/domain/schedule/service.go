package schedule

import "context"

// ScheduleService manages weekly schedule templates and their assignment
// history.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)

	// DeleteSchedule fails with ErrScheduleInUse while any worker or
	// historical assignment references the schedule.
	DeleteSchedule(ctx context.Context, id string) error

	ListAssignments(ctx context.Context, workerID string) ([]AssignmentResponse, error)
}
