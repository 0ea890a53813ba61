package justification

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/justification"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
)

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

type fakeJustificationRepo struct {
	items map[string]justification.Justification
}

func (f *fakeJustificationRepo) Create(_ context.Context, j justification.Justification) (justification.Justification, error) {
	for _, existing := range f.items {
		if existing.WorkerID == j.WorkerID && existing.Date.Equal(j.Date) {
			return justification.Justification{}, justification.ErrDuplicateJustification
		}
	}
	f.items[j.ID] = j
	return j, nil
}

func (f *fakeJustificationRepo) GetByID(_ context.Context, id string) (justification.Justification, error) {
	j, ok := f.items[id]
	if !ok {
		return justification.Justification{}, justification.ErrJustificationNotFound
	}
	return j, nil
}

func (f *fakeJustificationRepo) GetByWorkerAndDate(_ context.Context, workerID string, date time.Time) (*justification.Justification, error) {
	for _, j := range f.items {
		if j.WorkerID == workerID && j.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out := j
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeJustificationRepo) ListByWorkerBetween(_ context.Context, workerID string, start, end time.Time) ([]justification.Justification, error) {
	var out []justification.Justification
	for _, j := range f.items {
		d := j.Date.Format("2006-01-02")
		if j.WorkerID == workerID && d >= start.Format("2006-01-02") && d <= end.Format("2006-01-02") {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJustificationRepo) List(context.Context, justification.JustificationFilter) ([]justification.Justification, int64, error) {
	var out []justification.Justification
	for _, j := range f.items {
		out = append(out, j)
	}
	return out, int64(len(out)), nil
}

func (f *fakeJustificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return justification.ErrJustificationNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeReasonRuleRepo struct {
	rules      map[string]justification.ReasonRule
	referenced bool
}

func (f *fakeReasonRuleRepo) Create(_ context.Context, rule justification.ReasonRule) (justification.ReasonRule, error) {
	f.rules[rule.ID] = rule
	return rule, nil
}

func (f *fakeReasonRuleRepo) GetByID(_ context.Context, id string) (justification.ReasonRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return justification.ReasonRule{}, justification.ErrReasonRuleNotFound
	}
	return rule, nil
}

func (f *fakeReasonRuleRepo) List(context.Context) ([]justification.ReasonRule, error) {
	var out []justification.ReasonRule
	for _, rule := range f.rules {
		out = append(out, rule)
	}
	return out, nil
}

func (f *fakeReasonRuleRepo) Update(_ context.Context, rule justification.ReasonRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return justification.ErrReasonRuleNotFound
	}
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeReasonRuleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rules[id]; !ok {
		return justification.ErrReasonRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

func (f *fakeReasonRuleRepo) IsReferenced(context.Context, string) (bool, error) {
	return f.referenced, nil
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

type fakeToleranceRuleRepo struct {
	rules []attendance.ToleranceRule
}

func (f *fakeToleranceRuleRepo) List(context.Context) ([]attendance.ToleranceRule, error) {
	return f.rules, nil
}

func (f *fakeToleranceRuleRepo) GetByID(_ context.Context, id string) (attendance.ToleranceRule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.ToleranceRule{}, attendance.ErrToleranceRuleNotFound
}

func (f *fakeToleranceRuleRepo) Create(_ context.Context, rule attendance.ToleranceRule) (attendance.ToleranceRule, error) {
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeToleranceRuleRepo) Update(context.Context, attendance.ToleranceRule) error { return nil }
func (f *fakeToleranceRuleRepo) Delete(context.Context, string) error                   { return nil }

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

func (f *fakeWorkerRepo) GetByEmail(context.Context, string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(context.Context, worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(context.Context, *string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w worker.Worker) error {
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) Deactivate(context.Context, string) error { return nil }

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	f.schedules[s.ID] = s
	return s, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleRepo) List(context.Context) ([]schedule.Schedule, error)  { return nil, nil }
func (f *fakeScheduleRepo) Update(context.Context, schedule.Schedule) error    { return nil }
func (f *fakeScheduleRepo) Delete(context.Context, string) error               { return nil }
func (f *fakeScheduleRepo) IsReferenced(context.Context, string) (bool, error) { return false, nil }

type fixture struct {
	svc            justification.JustificationService
	justifications *fakeJustificationRepo
	reasonRules    *fakeReasonRuleRepo
	records        *fakeRecordRepo
}

func newFixture() fixture {
	schedID := "sched-1"
	days := make(map[time.Weekday]schedule.DaySpan)
	for _, wd := range schedule.Weekdays {
		days[wd] = schedule.DaySpan{
			Entry: schedule.TimeOfDay{Hour: 8},
			Exit:  schedule.TimeOfDay{Hour: 16},
		}
	}

	justificationRepo := &fakeJustificationRepo{items: map[string]justification.Justification{}}
	reasonRuleRepo := &fakeReasonRuleRepo{rules: map[string]justification.ReasonRule{
		"jr1": {ID: "jr1", Description: "medical appointment"},
	}}
	recordRepo := &fakeRecordRepo{}
	toleranceRuleRepo := &fakeToleranceRuleRepo{rules: []attendance.ToleranceRule{
		{ID: "r1", Description: "tolerated", Status: attendance.StatusOnTime, MinMinutes: 1, MaxMinutes: 10},
		{ID: "r2", Description: "minor", Status: attendance.StatusMinorDelay, MinMinutes: 11, MaxMinutes: 20},
		{ID: "r3", Description: "major", Status: attendance.StatusMajorDelay, MinMinutes: 21, MaxMinutes: 30},
	}}
	workerRepo := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", ScheduleID: &schedID, Active: true},
	}}
	scheduleRepo := &fakeScheduleRepo{schedules: map[string]schedule.Schedule{
		"sched-1": {ID: "sched-1", Name: "standard", Days: days},
	}}

	svc := NewJustificationService(nil, time.UTC,
		justificationRepo, reasonRuleRepo, recordRepo, toleranceRuleRepo, workerRepo, scheduleRepo)

	return fixture{svc: svc, justifications: justificationRepo, reasonRules: reasonRuleRepo, records: recordRepo}
}

// 2026-06-01 is a Monday.
func mondayAt(clock string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", "2026-06-01 "+clock)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestApplyOverwritesDelayRecord(t *testing.T) {
	fx := newFixture()
	fx.records.records = []attendance.Record{{
		ID:        "rec1",
		WorkerID:  "w1",
		Timestamp: mondayAt("08:25:00"),
		Status:    attendance.StatusMajorDelay,
		Source:    attendance.SourceCheckIn,
	}}

	resp, err := fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
		WorkerID: "w1",
		Date:     "2026-06-01",
		RuleID:   "jr1",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", resp.Date)
	require.NotNil(t, resp.RuleDescription)
	assert.Equal(t, "medical appointment", *resp.RuleDescription)

	require.Len(t, fx.records.records, 1)
	assert.Equal(t, attendance.StatusJustified, fx.records.records[0].Status)
	// the original timestamp and source survive so revocation can reclassify
	assert.Equal(t, attendance.SourceCheckIn, fx.records.records[0].Source)
	assert.Equal(t, mondayAt("08:25:00"), fx.records.records[0].Timestamp)
}

func TestApplySynthesizesRecordOnEmptyDay(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
		WorkerID: "w1",
		Date:     "2026-06-01",
		RuleID:   "jr1",
	})
	require.NoError(t, err)

	require.Len(t, fx.records.records, 1)
	rec := fx.records.records[0]
	assert.Equal(t, attendance.StatusJustified, rec.Status)
	assert.Equal(t, attendance.SourceJustification, rec.Source)
	assert.Equal(t, "2026-06-01", rec.Timestamp.Format("2006-01-02"))
}

func TestApplyDuplicateRejected(t *testing.T) {
	fx := newFixture()
	req := justification.ApplyJustificationRequest{WorkerID: "w1", Date: "2026-06-01", RuleID: "jr1"}

	_, err := fx.svc.Apply(testCtx(), req)
	require.NoError(t, err)

	_, err = fx.svc.Apply(testCtx(), req)
	assert.ErrorIs(t, err, justification.ErrDuplicateJustification)
}

func TestApplyUnknownReferences(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
		WorkerID: "ghost", Date: "2026-06-01", RuleID: "jr1",
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	_, err = fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
		WorkerID: "w1", Date: "2026-06-01", RuleID: "missing",
	})
	assert.ErrorIs(t, err, justification.ErrReasonRuleNotFound)
}

func TestRevokeDeletesSynthesizedRecord(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
		WorkerID: "w1", Date: "2026-06-01", RuleID: "jr1",
	})
	require.NoError(t, err)
	require.Len(t, fx.records.records, 1)

	require.NoError(t, fx.svc.Revoke(testCtx(), resp.ID))

	assert.Empty(t, fx.records.records)
	assert.Empty(t, fx.justifications.items)
}

func TestRevokeReclassifiesRealCheckIn(t *testing.T) {
	cases := []struct {
		name  string
		clock string
		want  attendance.Status
	}{
		{"within tolerance", "08:09:00", attendance.StatusOnTime},
		{"minor delay", "08:15:00", attendance.StatusMinorDelay},
		{"major delay", "08:25:00", attendance.StatusMajorDelay},
		{"beyond rules", "09:30:00", attendance.StatusAbsence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture()
			fx.records.records = []attendance.Record{{
				ID:        "rec1",
				WorkerID:  "w1",
				Timestamp: mondayAt(tc.clock),
				Status:    tc.want,
				Source:    attendance.SourceCheckIn,
			}}

			resp, err := fx.svc.Apply(testCtx(), justification.ApplyJustificationRequest{
				WorkerID: "w1", Date: "2026-06-01", RuleID: "jr1",
			})
			require.NoError(t, err)
			require.Equal(t, attendance.StatusJustified, fx.records.records[0].Status)

			require.NoError(t, fx.svc.Revoke(testCtx(), resp.ID))

			// back to the status classification produces from the stored timestamp
			require.Len(t, fx.records.records, 1)
			assert.Equal(t, tc.want, fx.records.records[0].Status)
		})
	}
}

func TestRevokeUnknownJustification(t *testing.T) {
	fx := newFixture()
	err := fx.svc.Revoke(testCtx(), "missing")
	assert.ErrorIs(t, err, justification.ErrJustificationNotFound)
}

func TestReasonRuleLifecycle(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.CreateReasonRule(testCtx(), justification.ReasonRuleRequest{Description: "jury duty"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, err := fx.svc.UpdateReasonRule(testCtx(), justification.ReasonRuleRequest{ID: created.ID, Description: "civic duty"})
	require.NoError(t, err)
	assert.Equal(t, "civic duty", updated.Description)

	require.NoError(t, fx.svc.DeleteReasonRule(testCtx(), created.ID))

	fx.reasonRules.referenced = true
	err = fx.svc.DeleteReasonRule(testCtx(), "jr1")
	assert.ErrorIs(t, err, justification.ErrReasonRuleInUse)
}
