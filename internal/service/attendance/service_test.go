package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

// stubQuerier lets transactional service paths run without a live pool.
type stubQuerier struct{}

func (stubQuerier) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubQuerier) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (stubQuerier) QueryRow(context.Context, string, ...interface{}) pgx.Row { return nil }

func testCtx() context.Context {
	return postgresql.WithQuerier(context.Background(), database.Querier(stubQuerier{}))
}

type fakeRecordRepo struct {
	records []attendance.Record
}

func (f *fakeRecordRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) ListByWorkerAndDay(_ context.Context, workerID string, day time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.WorkerID == workerID && rec.Timestamp.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByWorkerBetween(_ context.Context, workerID string, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		d := rec.Timestamp.Format("2006-01-02")
		if rec.WorkerID == workerID && d >= start.Format("2006-01-02") && d <= end.Format("2006-01-02") {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByDay(_ context.Context, day time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Timestamp.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) List(context.Context, attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeRecordRepo) Update(_ context.Context, rec attendance.Record) error {
	for i := range f.records {
		if f.records[i].ID == rec.ID {
			f.records[i] = rec
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) Delete(_ context.Context, id string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) LockWorkerDay(context.Context, string, time.Time) error { return nil }

type fakeRuleRepo struct {
	rules   []attendance.ToleranceRule
	listErr error
}

func (f *fakeRuleRepo) List(context.Context) ([]attendance.ToleranceRule, error) {
	return f.rules, f.listErr
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id string) (attendance.ToleranceRule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.ToleranceRule{}, attendance.ErrToleranceRuleNotFound
}

func (f *fakeRuleRepo) Create(_ context.Context, rule attendance.ToleranceRule) (attendance.ToleranceRule, error) {
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule attendance.ToleranceRule) error {
	for i := range f.rules {
		if f.rules[i].ID == rule.ID {
			f.rules[i] = rule
			return nil
		}
	}
	return attendance.ErrToleranceRuleNotFound
}

func (f *fakeRuleRepo) Delete(_ context.Context, id string) error {
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return attendance.ErrToleranceRuleNotFound
}

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(context.Context, worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(_ context.Context, _ *string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w worker.Worker) error {
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) Deactivate(_ context.Context, id string) error {
	w, ok := f.workers[id]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	w.Active = false
	f.workers[id] = w
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
	getErr    error
}

func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	f.schedules[s.ID] = s
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	if f.getErr != nil {
		return schedule.Schedule{}, f.getErr
	}
	s, ok := f.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleRepo) List(context.Context) ([]schedule.Schedule, error) { return nil, nil }
func (f *fakeScheduleRepo) Update(context.Context, schedule.Schedule) error  { return nil }
func (f *fakeScheduleRepo) Delete(context.Context, string) error             { return nil }
func (f *fakeScheduleRepo) IsReferenced(context.Context, string) (bool, error) {
	return false, nil
}

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays[h.Date.Format("2006-01-02")] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(context.Context, string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetByDate(_ context.Context, date time.Time) (*holiday.Holiday, error) {
	h, ok := f.holidays[date.Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (f *fakeHolidayRepo) List(context.Context, holiday.HolidayFilter) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) ListBetween(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		d := h.Date.Format("2006-01-02")
		if d >= start.Format("2006-01-02") && d <= end.Format("2006-01-02") {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Update(context.Context, holiday.Holiday) error { return nil }
func (f *fakeHolidayRepo) Delete(context.Context, string) error          { return nil }

func standardSchedule() schedule.Schedule {
	days := make(map[time.Weekday]schedule.DaySpan)
	for _, wd := range schedule.Weekdays {
		days[wd] = schedule.DaySpan{
			Entry: schedule.TimeOfDay{Hour: 8},
			Exit:  schedule.TimeOfDay{Hour: 16},
		}
	}
	return schedule.Schedule{ID: "sched-1", Name: "standard", Days: days}
}

func exampleRules() []attendance.ToleranceRule {
	return []attendance.ToleranceRule{
		{ID: "r1", Description: "tolerated", Status: attendance.StatusOnTime, MinMinutes: 1, MaxMinutes: 10},
		{ID: "r2", Description: "minor", Status: attendance.StatusMinorDelay, MinMinutes: 11, MaxMinutes: 20},
		{ID: "r3", Description: "major", Status: attendance.StatusMajorDelay, MinMinutes: 21, MaxMinutes: 30},
	}
}

func newTestService() (attendance.AttendanceService, *fakeRecordRepo, *fakeRuleRepo, *fakeScheduleRepo, *fakeHolidayRepo) {
	schedID := "sched-1"
	recordRepo := &fakeRecordRepo{}
	ruleRepo := &fakeRuleRepo{rules: exampleRules()}
	workerRepo := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", ScheduleID: &schedID, Active: true},
	}}
	scheduleRepo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{"sched-1": standardSchedule()}}
	holidayRepo := &fakeHolidayRepo{holidays: map[string]holiday.Holiday{}}

	svc := NewAttendanceService(nil, time.UTC, recordRepo, ruleRepo, workerRepo, scheduleRepo, holidayRepo)
	return svc, recordRepo, ruleRepo, scheduleRepo, holidayRepo
}

func TestCheckInClassification(t *testing.T) {
	// 2026-06-01 is a Monday
	cases := []struct {
		clock string
		want  string
	}{
		{"08:09:00", "ON_TIME"},
		{"08:15:00", "MINOR_DELAY"},
		{"08:25:00", "MAJOR_DELAY"},
		{"08:45:00", "ABSENCE"},
		{"07:30:00", "ON_TIME"},
	}

	for _, tc := range cases {
		t.Run(tc.clock, func(t *testing.T) {
			svc, _, _, _, _ := newTestService()
			resp, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{
				WorkerID:  "w1",
				Timestamp: "2026-06-01 " + tc.clock,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Status)
			assert.Equal(t, "ENTRY", resp.Kind)
			assert.Equal(t, "2026-06-01", resp.Date)
		})
	}
}

func TestCheckInSecondRecordIsExit(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestService()

	first, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 08:05:00"})
	require.NoError(t, err)
	assert.Equal(t, "ON_TIME", first.Status)

	second, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 17:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "EXIT", second.Status)
	assert.Equal(t, "EXIT", second.Kind)

	// third starts a new pair and is classified again
	third, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 18:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "ENTRY", third.Kind)

	assert.Len(t, recordRepo.records, 3)
}

func TestCheckInUnknownWorker(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "ghost", Timestamp: "2026-06-01 08:00:00"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestCheckInDegradesOnConfigFailure(t *testing.T) {
	t.Run("schedule lookup error", func(t *testing.T) {
		svc, _, _, scheduleRepo, _ := newTestService()
		scheduleRepo.getErr = errors.New("malformed schedule row")

		resp, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 09:30:00"})
		require.NoError(t, err)
		assert.Equal(t, "ON_TIME", resp.Status)
	})

	t.Run("rule table lookup error", func(t *testing.T) {
		svc, _, ruleRepo, _, _ := newTestService()
		ruleRepo.listErr = errors.New("rule table unavailable")

		resp, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 09:30:00"})
		require.NoError(t, err)
		assert.Equal(t, "ON_TIME", resp.Status)
	})
}

func TestCheckInOnHolidayStillClassified(t *testing.T) {
	svc, _, _, _, holidayRepo := newTestService()
	holidayRepo.holidays["2026-06-01"] = holiday.Holiday{ID: "h1", Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Description: "Founders Day"}

	resp, err := svc.CheckIn(testCtx(), attendance.CheckInRequest{WorkerID: "w1", Timestamp: "2026-06-01 08:45:00"})
	require.NoError(t, err)
	assert.Equal(t, "ABSENCE", resp.Status)
}

func TestToleranceRuleCRUD(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	t.Run("overlapping rule rejected", func(t *testing.T) {
		_, err := svc.CreateToleranceRule(testCtx(), attendance.ToleranceRuleRequest{
			Description: "conflicting",
			Status:      "ABSENCE",
			MinMinutes:  30,
			MaxMinutes:  90,
		})
		assert.ErrorIs(t, err, attendance.ErrOverlappingRule)
	})

	t.Run("disjoint rule accepted", func(t *testing.T) {
		created, err := svc.CreateToleranceRule(testCtx(), attendance.ToleranceRuleRequest{
			Description: "hard absence",
			Status:      "ABSENCE",
			MinMinutes:  31,
			MaxMinutes:  480,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("update keeping own interval", func(t *testing.T) {
		_, err := svc.UpdateToleranceRule(testCtx(), attendance.ToleranceRuleRequest{
			ID:          "r2",
			Description: "renamed minor",
			Status:      "MINOR_DELAY",
			MinMinutes:  11,
			MaxMinutes:  20,
		})
		assert.NoError(t, err)
	})

	t.Run("invalid interval rejected by validation", func(t *testing.T) {
		_, err := svc.CreateToleranceRule(testCtx(), attendance.ToleranceRuleRequest{
			Description: "backwards",
			Status:      "ABSENCE",
			MinMinutes:  50,
			MaxMinutes:  40,
		})
		assert.Error(t, err)
	})
}
