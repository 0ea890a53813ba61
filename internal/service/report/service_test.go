package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/report"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
)

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.workers = append(f.workers, w)
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByEmail(context.Context, string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(context.Context, worker.WorkerFilter) ([]worker.Worker, int64, error) {
	return nil, 0, nil
}

func (f *fakeWorkerRepo) ListActive(_ context.Context, departmentID *string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if !w.Active {
			continue
		}
		if departmentID != nil && (w.DepartmentID == nil || *w.DepartmentID != *departmentID) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(context.Context, worker.Worker) error   { return nil }
func (f *fakeWorkerRepo) Deactivate(context.Context, string) error      { return nil }

type fakeRecordRepo struct {
	records []attendance.Record
}

func (f *fakeRecordRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(context.Context, string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) ListByWorkerAndDay(_ context.Context, workerID string, day time.Time) ([]attendance.Record, error) {
	return f.ListByWorkerBetween(context.Background(), workerID, day, day)
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

func (f *fakeRecordRepo) ListByDay(context.Context, time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) List(context.Context, attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeRecordRepo) Update(context.Context, attendance.Record) error        { return nil }
func (f *fakeRecordRepo) Delete(context.Context, string) error                   { return nil }
func (f *fakeRecordRepo) LockWorkerDay(context.Context, string, time.Time) error { return nil }

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(context.Context, string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetByDate(_ context.Context, date time.Time) (*holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out := h
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) List(context.Context, holiday.HolidayFilter) ([]holiday.Holiday, error) {
	return f.holidays, nil
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

// The test window is the week of 2024-06-03, a Monday. Using a past window
// keeps the today clamp out of the way.
func june(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

func newFixture() (report.ReportService, *fakeWorkerRepo, *fakeRecordRepo, *fakeHolidayRepo) {
	deptID := "d1"
	deptName := "Operations"
	workerRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w1", FirstName: "Ana", LastName: "Lopez", DepartmentID: &deptID, DepartmentName: &deptName, Active: true},
	}}
	recordRepo := &fakeRecordRepo{}
	holidayRepo := &fakeHolidayRepo{}
	svc := NewReportService(time.UTC, workerRepo, recordRepo, holidayRepo)
	return svc, workerRepo, recordRepo, holidayRepo
}

func TestRangeBucketsStatuses(t *testing.T) {
	svc, _, recordRepo, _ := newFixture()
	recordRepo.records = []attendance.Record{
		{ID: "1", WorkerID: "w1", Timestamp: june(3, 8, 5), Status: attendance.StatusOnTime, Source: attendance.SourceCheckIn},
		{ID: "2", WorkerID: "w1", Timestamp: june(4, 8, 15), Status: attendance.StatusMinorDelay, Source: attendance.SourceCheckIn},
		{ID: "3", WorkerID: "w1", Timestamp: june(5, 8, 25), Status: attendance.StatusMajorDelay, Source: attendance.SourceCheckIn},
		{ID: "4", WorkerID: "w1", Timestamp: june(6, 9, 30), Status: attendance.StatusAbsence, Source: attendance.SourceCheckIn},
		// exits never influence stats
		{ID: "5", WorkerID: "w1", Timestamp: june(3, 16, 0), Status: attendance.StatusExit, Source: attendance.SourceCheckIn},
	}

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate:   "2024-06-03",
		EndDate:     "2024-06-09",
		IncludeDays: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)

	stats := resp.Workers[0].Stats
	assert.Equal(t, 5, stats.WorkingDays)
	assert.Equal(t, 1, stats.OnTime)
	assert.Equal(t, 1, stats.MinorDelays)
	assert.Equal(t, 1, stats.MajorDelays)
	assert.Equal(t, 2, stats.Delays)
	assert.Equal(t, 1, stats.Absences)
	assert.Equal(t, 1, stats.Unregistered) // Friday has no record
	assert.InDelta(t, 0.2, stats.AttendanceRate, 1e-9)

	// weekend days are absent from the day list
	require.Len(t, resp.Workers[0].Days, 5)
	assert.Equal(t, "2024-06-03", resp.Workers[0].Days[0].Date)
	assert.Equal(t, "ON_TIME", resp.Workers[0].Days[0].Status)
	require.NotNil(t, resp.Workers[0].Days[0].CheckIn)
	assert.Equal(t, "08:05:00", *resp.Workers[0].Days[0].CheckIn)
	require.NotNil(t, resp.Workers[0].Days[0].CheckOut)
	assert.Equal(t, "16:00:00", *resp.Workers[0].Days[0].CheckOut)
	assert.Nil(t, resp.Workers[0].Days[1].CheckOut)
	assert.Equal(t, "UNREGISTERED", resp.Workers[0].Days[4].Status)
	assert.Nil(t, resp.Workers[0].Days[4].CheckIn)
}

func TestRangeWeekendOnlyWindow(t *testing.T) {
	svc, _, _, _ := newFixture()

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate: "2024-06-08",
		EndDate:   "2024-06-09",
	})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, 0, resp.Workers[0].Stats.WorkingDays)
	assert.Zero(t, resp.Workers[0].Stats.AttendanceRate)
	assert.Zero(t, resp.Totals.AttendanceRate)
}

func TestRangeSkipsHolidays(t *testing.T) {
	svc, _, recordRepo, holidayRepo := newFixture()
	holidayRepo.holidays = []holiday.Holiday{
		{ID: "h1", Date: june(5, 0, 0), Description: "Founders Day"},
	}
	// a record on the holiday is ignored by aggregation
	recordRepo.records = []attendance.Record{
		{ID: "1", WorkerID: "w1", Timestamp: june(5, 8, 45), Status: attendance.StatusAbsence, Source: attendance.SourceCheckIn},
	}

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-07",
	})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, 4, resp.Workers[0].Stats.WorkingDays)
	assert.Equal(t, 0, resp.Workers[0].Stats.Absences)
	assert.Equal(t, 4, resp.Workers[0].Stats.Unregistered)
}

func TestRangeJustifiedDay(t *testing.T) {
	svc, _, recordRepo, _ := newFixture()
	recordRepo.records = []attendance.Record{
		{ID: "1", WorkerID: "w1", Timestamp: june(3, 0, 0), Status: attendance.StatusJustified, Source: attendance.SourceJustification},
	}

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate:   "2024-06-03",
		EndDate:     "2024-06-03",
		IncludeDays: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, 1, resp.Workers[0].Stats.Justified)

	// synthesized records carry no clock-in time
	require.Len(t, resp.Workers[0].Days, 1)
	assert.Equal(t, "JUSTIFIED", resp.Workers[0].Days[0].Status)
	assert.Nil(t, resp.Workers[0].Days[0].CheckIn)
}

func TestRangeDepartmentRollup(t *testing.T) {
	svc, workerRepo, recordRepo, _ := newFixture()
	deptID := "d1"
	deptName := "Operations"
	workerRepo.workers = append(workerRepo.workers,
		worker.Worker{ID: "w2", FirstName: "Benito", LastName: "Cruz", DepartmentID: &deptID, DepartmentName: &deptName, Active: true},
		worker.Worker{ID: "w3", FirstName: "Carla", LastName: "Diaz", Active: true},
	)
	recordRepo.records = []attendance.Record{
		{ID: "1", WorkerID: "w1", Timestamp: june(3, 8, 0), Status: attendance.StatusOnTime, Source: attendance.SourceCheckIn},
		{ID: "2", WorkerID: "w2", Timestamp: june(3, 8, 15), Status: attendance.StatusMinorDelay, Source: attendance.SourceCheckIn},
		{ID: "3", WorkerID: "w3", Timestamp: june(3, 8, 0), Status: attendance.StatusOnTime, Source: attendance.SourceCheckIn},
	}

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-03",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Workers, 3)

	require.Len(t, resp.Departments, 1)
	dept := resp.Departments[0]
	assert.Equal(t, "d1", dept.DepartmentID)
	assert.Equal(t, "Operations", dept.DepartmentName)
	assert.Equal(t, 2, dept.WorkerCount)
	assert.Equal(t, 2, dept.Stats.WorkingDays)
	assert.Equal(t, 1, dept.Stats.OnTime)
	assert.InDelta(t, 0.5, dept.Stats.AttendanceRate, 1e-9)

	assert.Equal(t, 3, resp.Totals.WorkingDays)
	assert.Equal(t, 2, resp.Totals.OnTime)
}

func TestRangeSingleWorkerFilter(t *testing.T) {
	svc, workerRepo, _, _ := newFixture()
	workerRepo.workers = append(workerRepo.workers,
		worker.Worker{ID: "w2", FirstName: "Benito", LastName: "Cruz", Active: true})
	workerID := "w2"

	resp, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-07",
		WorkerID:  &workerID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, "w2", resp.Workers[0].WorkerID)
	assert.Equal(t, "Benito Cruz", resp.Workers[0].WorkerName)
}

func TestRangeValidation(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.Range(context.Background(), report.RangeRequest{
		StartDate: "2024-06-07",
		EndDate:   "2024-06-03",
	})
	assert.Error(t, err)
}

func TestMonthly(t *testing.T) {
	svc, _, recordRepo, holidayRepo := newFixture()
	// June 2024 has 20 weekdays
	holidayRepo.holidays = []holiday.Holiday{
		{ID: "h1", Date: june(12, 0, 0), Description: "Midweek Holiday"},
	}
	recordRepo.records = []attendance.Record{
		{ID: "1", WorkerID: "w1", Timestamp: june(3, 8, 0), Status: attendance.StatusOnTime, Source: attendance.SourceCheckIn},
	}

	resp, err := svc.Monthly(context.Background(), report.MonthlyRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 6, resp.Month)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, 19, resp.Workers[0].Stats.WorkingDays)
	assert.Equal(t, 1, resp.Workers[0].Stats.OnTime)

	_, err = svc.Monthly(context.Background(), report.MonthlyRequest{Year: 2024, Month: 13})
	assert.Error(t, err)
}

func TestDaily(t *testing.T) {
	svc, _, recordRepo, holidayRepo := newFixture()

	t.Run("working day", func(t *testing.T) {
		recordRepo.records = []attendance.Record{
			{ID: "1", WorkerID: "w1", Timestamp: june(3, 8, 15), Status: attendance.StatusMinorDelay, Source: attendance.SourceCheckIn},
		}

		resp, err := svc.Daily(context.Background(), "2024-06-03", nil)
		require.NoError(t, err)
		assert.Nil(t, resp.Holiday)
		require.Len(t, resp.Workers, 1)
		assert.Equal(t, 1, resp.Workers[0].Stats.MinorDelays)
		assert.Equal(t, 1, resp.Totals.Delays)
	})

	t.Run("holiday", func(t *testing.T) {
		holidayRepo.holidays = []holiday.Holiday{
			{ID: "h1", Date: june(5, 0, 0), Description: "Founders Day"},
		}

		resp, err := svc.Daily(context.Background(), "2024-06-05", nil)
		require.NoError(t, err)
		require.NotNil(t, resp.Holiday)
		assert.Equal(t, "Founders Day", *resp.Holiday)
		require.Len(t, resp.Workers, 1)
		assert.Equal(t, 0, resp.Workers[0].Stats.WorkingDays)
	})
}
