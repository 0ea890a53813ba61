package justification

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/justification"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

type JustificationServiceImpl struct {
	db  *database.DB
	loc *time.Location
	justification.JustificationRepository
	justification.ReasonRuleRepository
	attendance.RecordRepository
	attendance.ToleranceRuleRepository
	worker.WorkerRepository
	schedule.ScheduleRepository
}

func NewJustificationService(
	db *database.DB,
	loc *time.Location,
	justificationRepo justification.JustificationRepository,
	reasonRuleRepo justification.ReasonRuleRepository,
	recordRepo attendance.RecordRepository,
	toleranceRuleRepo attendance.ToleranceRuleRepository,
	workerRepo worker.WorkerRepository,
	scheduleRepo schedule.ScheduleRepository,
) justification.JustificationService {
	return &JustificationServiceImpl{
		db:                      db,
		loc:                     loc,
		JustificationRepository: justificationRepo,
		ReasonRuleRepository:    reasonRuleRepo,
		RecordRepository:        recordRepo,
		ToleranceRuleRepository: toleranceRuleRepo,
		WorkerRepository:        workerRepo,
		ScheduleRepository:      scheduleRepo,
	}
}

// Apply implements justification.JustificationService.
func (s *JustificationServiceImpl) Apply(ctx context.Context, req justification.ApplyJustificationRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return justification.JustificationResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		return justification.JustificationResponse{}, err
	}

	rule, err := s.ReasonRuleRepository.GetByID(ctx, req.RuleID)
	if err != nil {
		return justification.JustificationResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return justification.JustificationResponse{}, fmt.Errorf("failed to generate justification id: %w", err)
	}

	var created justification.Justification
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.RecordRepository.LockWorkerDay(txCtx, w.ID, date); err != nil {
			return err
		}

		if existing, err := s.JustificationRepository.GetByWorkerAndDate(txCtx, w.ID, date); err != nil {
			return err
		} else if existing != nil {
			return justification.ErrDuplicateJustification
		}

		created, err = s.JustificationRepository.Create(txCtx, justification.Justification{
			ID:       id.String(),
			WorkerID: w.ID,
			Date:     date,
			RuleID:   rule.ID,
		})
		if err != nil {
			return err
		}

		return s.overlayDay(txCtx, w.ID, date)
	})
	if err != nil {
		return justification.JustificationResponse{}, err
	}

	created.WorkerName = ptr(w.FullName())
	created.RuleDescription = ptr(rule.Description)
	return toResponse(created), nil
}

// overlayDay marks the day's entry record JUSTIFIED, synthesizing a midnight
// record when the worker never clocked in.
func (s *JustificationServiceImpl) overlayDay(ctx context.Context, workerID string, date time.Time) error {
	sameDay, err := s.RecordRepository.ListByWorkerAndDay(ctx, workerID, date)
	if err != nil {
		return err
	}

	for _, rec := range sameDay {
		if !rec.Status.IsEntryType() {
			continue
		}
		if rec.Status == attendance.StatusJustified {
			return nil
		}
		rec.Status = attendance.StatusJustified
		return s.RecordRepository.Update(ctx, rec)
	}

	recID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate record id: %w", err)
	}
	_, err = s.RecordRepository.Create(ctx, attendance.Record{
		ID:        recID.String(),
		WorkerID:  workerID,
		Timestamp: date,
		Status:    attendance.StatusJustified,
		Source:    attendance.SourceJustification,
	})
	return err
}

// Get implements justification.JustificationService.
func (s *JustificationServiceImpl) Get(ctx context.Context, id string) (justification.JustificationResponse, error) {
	j, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return justification.JustificationResponse{}, err
	}
	return toResponse(j), nil
}

// List implements justification.JustificationService.
func (s *JustificationServiceImpl) List(ctx context.Context, filter justification.JustificationFilter) (justification.ListJustificationsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	justifications, total, err := s.JustificationRepository.List(ctx, filter)
	if err != nil {
		return justification.ListJustificationsResponse{}, err
	}

	resp := justification.ListJustificationsResponse{
		TotalCount:     total,
		Page:           filter.Page,
		Limit:          filter.Limit,
		TotalPages:     int(math.Ceil(float64(total) / float64(filter.Limit))),
		Justifications: make([]justification.JustificationResponse, 0, len(justifications)),
	}
	for _, j := range justifications {
		resp.Justifications = append(resp.Justifications, toResponse(j))
	}

	return resp, nil
}

// Revoke implements justification.JustificationService.
func (s *JustificationServiceImpl) Revoke(ctx context.Context, id string) error {
	j, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.RecordRepository.LockWorkerDay(txCtx, j.WorkerID, j.Date); err != nil {
			return err
		}

		if err := s.JustificationRepository.Delete(txCtx, j.ID); err != nil {
			return err
		}

		return s.restoreDay(txCtx, j.WorkerID, j.Date)
	})
}

// restoreDay reverses the overlay: synthesized records disappear, real
// check-ins go back to the status classification yields for their stored
// timestamp.
func (s *JustificationServiceImpl) restoreDay(ctx context.Context, workerID string, date time.Time) error {
	sameDay, err := s.RecordRepository.ListByWorkerAndDay(ctx, workerID, date)
	if err != nil {
		return err
	}

	for _, rec := range sameDay {
		if rec.Status != attendance.StatusJustified {
			continue
		}
		if rec.Source == attendance.SourceJustification {
			if err := s.RecordRepository.Delete(ctx, rec.ID); err != nil {
				return err
			}
			continue
		}

		rec.Status = s.reclassify(ctx, workerID, rec.Timestamp)
		if err := s.RecordRepository.Update(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}

func (s *JustificationServiceImpl) reclassify(ctx context.Context, workerID string, ts time.Time) attendance.Status {
	w, err := s.WorkerRepository.GetByID(ctx, workerID)
	if err != nil {
		slog.ErrorContext(ctx, "worker lookup failed during justification revoke, defaulting to on-time",
			"worker_id", workerID, "error", err)
		return attendance.StatusOnTime
	}

	var sched *schedule.Schedule
	if w.ScheduleID != nil {
		sc, err := s.ScheduleRepository.GetByID(ctx, *w.ScheduleID)
		if err != nil {
			slog.ErrorContext(ctx, "schedule lookup failed during justification revoke, defaulting to on-time",
				"worker_id", workerID, "schedule_id", *w.ScheduleID, "error", err)
			return attendance.StatusOnTime
		}
		sched = &sc
	}

	rules, err := s.ToleranceRuleRepository.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "tolerance rule lookup failed during justification revoke, defaulting to on-time",
			"worker_id", workerID, "error", err)
		return attendance.StatusOnTime
	}

	return attendance.ClassifyEntry(sched, rules, ts)
}

// ListReasonRules implements justification.JustificationService.
func (s *JustificationServiceImpl) ListReasonRules(ctx context.Context) ([]justification.ReasonRuleResponse, error) {
	rules, err := s.ReasonRuleRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]justification.ReasonRuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, justification.ReasonRuleResponse{ID: rule.ID, Description: rule.Description})
	}

	return resp, nil
}

// CreateReasonRule implements justification.JustificationService.
func (s *JustificationServiceImpl) CreateReasonRule(ctx context.Context, req justification.ReasonRuleRequest) (justification.ReasonRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.ReasonRuleResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return justification.ReasonRuleResponse{}, fmt.Errorf("failed to generate rule id: %w", err)
	}

	created, err := s.ReasonRuleRepository.Create(ctx, justification.ReasonRule{
		ID:          id.String(),
		Description: req.Description,
	})
	if err != nil {
		return justification.ReasonRuleResponse{}, err
	}

	return justification.ReasonRuleResponse{ID: created.ID, Description: created.Description}, nil
}

// UpdateReasonRule implements justification.JustificationService.
func (s *JustificationServiceImpl) UpdateReasonRule(ctx context.Context, req justification.ReasonRuleRequest) (justification.ReasonRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.ReasonRuleResponse{}, err
	}

	rule := justification.ReasonRule{ID: req.ID, Description: req.Description}
	if err := s.ReasonRuleRepository.Update(ctx, rule); err != nil {
		return justification.ReasonRuleResponse{}, err
	}

	return justification.ReasonRuleResponse{ID: rule.ID, Description: rule.Description}, nil
}

// DeleteReasonRule implements justification.JustificationService.
func (s *JustificationServiceImpl) DeleteReasonRule(ctx context.Context, id string) error {
	referenced, err := s.ReasonRuleRepository.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return justification.ErrReasonRuleInUse
	}

	return s.ReasonRuleRepository.Delete(ctx, id)
}

func toResponse(j justification.Justification) justification.JustificationResponse {
	return justification.JustificationResponse{
		ID:              j.ID,
		WorkerID:        j.WorkerID,
		WorkerName:      j.WorkerName,
		Date:            j.Date.Format("2006-01-02"),
		RuleID:          j.RuleID,
		RuleDescription: j.RuleDescription,
	}
}

func ptr[T any](v T) *T {
	return &v
}
