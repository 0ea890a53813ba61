package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.ScheduleRepository
	schedule.AssignmentRepository
}

func NewScheduleService(
	db *database.DB,
	scheduleRepo schedule.ScheduleRepository,
	assignmentRepo schedule.AssignmentRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                   db,
		ScheduleRepository:   scheduleRepo,
		AssignmentRepository: assignmentRepo,
	}
}

// CreateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	entity, err := req.ToSchedule()
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to generate schedule id: %w", err)
	}
	entity.ID = id.String()

	var created schedule.Schedule
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.ScheduleRepository.Create(txCtx, entity)
		return err
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return toScheduleResponse(created), nil
}

// GetSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	sched, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return toScheduleResponse(sched), nil
}

// ListSchedules implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	schedules, err := s.ScheduleRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		resp = append(resp, toScheduleResponse(sched))
	}

	return resp, nil
}

// UpdateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	entity, err := req.ToSchedule()
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	entity.ID = req.ID

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.ScheduleRepository.Update(txCtx, entity)
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	updated, err := s.ScheduleRepository.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return toScheduleResponse(updated), nil
}

// DeleteSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		referenced, err := s.ScheduleRepository.IsReferenced(txCtx, id)
		if err != nil {
			return err
		}
		if referenced {
			return schedule.ErrScheduleInUse
		}
		return s.ScheduleRepository.Delete(txCtx, id)
	})
}

// ListAssignments implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListAssignments(ctx context.Context, workerID string) ([]schedule.AssignmentResponse, error) {
	assignments, err := s.AssignmentRepository.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	resp := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, schedule.AssignmentResponse{
			ID:            a.ID,
			WorkerID:      a.WorkerID,
			ScheduleID:    a.ScheduleID,
			ScheduleName:  a.ScheduleName,
			EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
		})
	}

	return resp, nil
}

func toScheduleResponse(s schedule.Schedule) schedule.ScheduleResponse {
	days := make(map[string]schedule.DayTimesResponse, len(s.Days))
	for _, weekday := range schedule.Weekdays {
		span, ok := s.Days[weekday]
		if !ok {
			continue
		}
		days[weekdayKey(weekday)] = schedule.DayTimesResponse{
			Entry: span.Entry.String(),
			Exit:  span.Exit.String(),
		}
	}
	return schedule.ScheduleResponse{
		ID:        s.ID,
		Name:      s.Name,
		Days:      days,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func weekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	}
	return d.String()
}
