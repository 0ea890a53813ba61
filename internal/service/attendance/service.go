package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

const timestampLayout = "2006-01-02 15:04:05"

type AttendanceServiceImpl struct {
	db  *database.DB
	loc *time.Location
	attendance.RecordRepository
	attendance.ToleranceRuleRepository
	worker.WorkerRepository
	schedule.ScheduleRepository
	holiday.HolidayRepository
}

func NewAttendanceService(
	db *database.DB,
	loc *time.Location,
	recordRepo attendance.RecordRepository,
	ruleRepo attendance.ToleranceRuleRepository,
	workerRepo worker.WorkerRepository,
	scheduleRepo schedule.ScheduleRepository,
	holidayRepo holiday.HolidayRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                      db,
		loc:                     loc,
		RecordRepository:        recordRepo,
		ToleranceRuleRepository: ruleRepo,
		WorkerRepository:        workerRepo,
		ScheduleRepository:      scheduleRepo,
		HolidayRepository:       holidayRepo,
	}
}

// normalizeTimestamp resolves the request timestamp into the system's civil
// zone. Bare local timestamps are taken as already being civil time; RFC3339
// timestamps are converted.
func (a *AttendanceServiceImpl) normalizeTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().In(a.loc), nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.In(a.loc), nil
	}
	return time.ParseInLocation(timestampLayout, raw, a.loc)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts, err := a.normalizeTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	w, err := a.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	var created attendance.Record
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if err := a.RecordRepository.LockWorkerDay(txCtx, w.ID, ts); err != nil {
			return err
		}

		sameDay, err := a.RecordRepository.ListByWorkerAndDay(txCtx, w.ID, ts)
		if err != nil {
			return err
		}

		var status attendance.Status
		if attendance.DetermineKind(sameDay) == attendance.KindExit {
			status = attendance.StatusExit
		} else {
			status = a.classifyEntry(txCtx, w, ts)
		}

		created, err = a.RecordRepository.Create(txCtx, attendance.Record{
			ID:        id.String(),
			WorkerID:  w.ID,
			Timestamp: ts,
			Status:    status,
			Source:    attendance.SourceCheckIn,
		})
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	created.WorkerName = ptr(w.FullName())
	return toRecordResponse(created), nil
}

// classifyEntry loads the worker's schedule and the rule table and buckets
// the timestamp. Configuration lookups never fail a check-in: on error the
// record degrades to ON_TIME and the cause is logged.
func (a *AttendanceServiceImpl) classifyEntry(ctx context.Context, w worker.Worker, ts time.Time) attendance.Status {
	var sched *schedule.Schedule
	if w.ScheduleID != nil {
		s, err := a.ScheduleRepository.GetByID(ctx, *w.ScheduleID)
		if err != nil {
			slog.ErrorContext(ctx, "schedule lookup failed during check-in, defaulting to on-time",
				"worker_id", w.ID, "schedule_id", *w.ScheduleID, "error", err)
			return attendance.StatusOnTime
		}
		sched = &s
	}

	rules, err := a.ToleranceRuleRepository.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "tolerance rule lookup failed during check-in, defaulting to on-time",
			"worker_id", w.ID, "error", err)
		return attendance.StatusOnTime
	}

	return attendance.ClassifyEntry(sched, rules, ts)
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := a.RecordRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toRecordResponse(rec), nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.RecordRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	resp := attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}

	return resp, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	now := time.Now().In(a.loc)

	workers, err := a.WorkerRepository.ListActive(ctx, nil)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	records, err := a.RecordRepository.ListByDay(ctx, now)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	byWorker := make(map[string][]attendance.Record)
	for _, rec := range records {
		byWorker[rec.WorkerID] = append(byWorker[rec.WorkerID], rec)
	}

	resp := attendance.TodayResponse{
		Date:    now.Format("2006-01-02"),
		Workers: make([]attendance.TodayWorkerRow, 0, len(workers)),
	}
	resp.Tallies.TotalWorkers = len(workers)

	for _, w := range workers {
		row := attendance.TodayWorkerRow{
			WorkerID:   w.ID,
			Name:       w.FullName(),
			Department: w.DepartmentName,
			Status:     string(attendance.StatusUnregistered),
		}

		for _, rec := range byWorker[w.ID] {
			row.TotalRecords++
			switch {
			case rec.Status.IsEntryType() && row.EntryTime == nil:
				row.EntryTime = ptr(rec.Timestamp.Format("15:04:05"))
				row.Status = string(rec.Status)
			case rec.Status == attendance.StatusExit:
				row.ExitTime = ptr(rec.Timestamp.Format("15:04:05"))
			}
		}

		switch attendance.Status(row.Status) {
		case attendance.StatusOnTime:
			resp.Tallies.OnTime++
		case attendance.StatusMinorDelay, attendance.StatusMajorDelay:
			resp.Tallies.Delays++
		case attendance.StatusAbsence:
			resp.Tallies.Absences++
		case attendance.StatusJustified:
			resp.Tallies.Justified++
		default:
			resp.Tallies.Unregistered++
		}

		resp.Workers = append(resp.Workers, row)
	}

	return resp, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := a.RecordRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.Timestamp != nil {
		ts, err := a.normalizeTimestamp(*req.Timestamp)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		rec.Timestamp = ts
	}
	if req.Status != nil {
		rec.Status = attendance.Status(*req.Status)
	}

	if err := a.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(rec), nil
}

// DeleteRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return a.RecordRepository.Delete(ctx, id)
}

// ListToleranceRules implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListToleranceRules(ctx context.Context) ([]attendance.ToleranceRuleResponse, error) {
	rules, err := a.ToleranceRuleRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.ToleranceRuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, toRuleResponse(rule))
	}

	return resp, nil
}

// CreateToleranceRule implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateToleranceRule(ctx context.Context, req attendance.ToleranceRuleRequest) (attendance.ToleranceRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ToleranceRuleResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.ToleranceRuleResponse{}, fmt.Errorf("failed to generate rule id: %w", err)
	}
	rule := req.ToRule()
	rule.ID = id.String()

	var created attendance.ToleranceRule
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.ToleranceRuleRepository.List(txCtx)
		if err != nil {
			return err
		}
		if err := attendance.ValidateRuleSet(existing, rule, ""); err != nil {
			return err
		}
		created, err = a.ToleranceRuleRepository.Create(txCtx, rule)
		return err
	})
	if err != nil {
		return attendance.ToleranceRuleResponse{}, err
	}

	return toRuleResponse(created), nil
}

// UpdateToleranceRule implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateToleranceRule(ctx context.Context, req attendance.ToleranceRuleRequest) (attendance.ToleranceRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ToleranceRuleResponse{}, err
	}
	rule := req.ToRule()

	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if _, err := a.ToleranceRuleRepository.GetByID(txCtx, rule.ID); err != nil {
			return err
		}
		existing, err := a.ToleranceRuleRepository.List(txCtx)
		if err != nil {
			return err
		}
		if err := attendance.ValidateRuleSet(existing, rule, rule.ID); err != nil {
			return err
		}
		return a.ToleranceRuleRepository.Update(txCtx, rule)
	})
	if err != nil {
		return attendance.ToleranceRuleResponse{}, err
	}

	return toRuleResponse(rule), nil
}

// DeleteToleranceRule implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteToleranceRule(ctx context.Context, id string) error {
	return a.ToleranceRuleRepository.Delete(ctx, id)
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	kind := attendance.KindEntry
	if rec.Status == attendance.StatusExit {
		kind = attendance.KindExit
	}
	return attendance.RecordResponse{
		ID:         rec.ID,
		WorkerID:   rec.WorkerID,
		WorkerName: rec.WorkerName,
		Timestamp:  rec.Timestamp.Format(timestampLayout),
		Date:       rec.Timestamp.Format("2006-01-02"),
		Status:     string(rec.Status),
		Kind:       string(kind),
	}
}

func toRuleResponse(rule attendance.ToleranceRule) attendance.ToleranceRuleResponse {
	return attendance.ToleranceRuleResponse{
		ID:          rule.ID,
		Description: rule.Description,
		Status:      string(rule.Status),
		MinMinutes:  rule.MinMinutes,
		MaxMinutes:  rule.MaxMinutes,
	}
}

func ptr[T any](v T) *T {
	return &v
}
