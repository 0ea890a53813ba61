package report

import (
	"context"
	"fmt"
	"time"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/report"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
)

const dateLayout = "2006-01-02"

type ReportServiceImpl struct {
	loc *time.Location
	worker.WorkerRepository
	attendance.RecordRepository
	holiday.HolidayRepository
}

func NewReportService(
	loc *time.Location,
	workerRepo worker.WorkerRepository,
	recordRepo attendance.RecordRepository,
	holidayRepo holiday.HolidayRepository,
) report.ReportService {
	return &ReportServiceImpl{
		loc:               loc,
		WorkerRepository:  workerRepo,
		RecordRepository:  recordRepo,
		HolidayRepository: holidayRepo,
	}
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, date string, departmentID *string) (report.DailyReport, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to parse date: %w", err)
	}

	workers, holidays, err := s.loadWindow(ctx, day, day, departmentID, nil)
	if err != nil {
		return report.DailyReport{}, err
	}

	resp := report.DailyReport{
		Date:    date,
		Workers: make([]report.WorkerReport, 0, len(workers)),
	}
	if h, ok := holidays[date]; ok {
		resp.Holiday = &h
	}

	for _, w := range workers {
		wr, err := s.buildWorkerReport(ctx, w, day, day, holidays, true)
		if err != nil {
			return report.DailyReport{}, err
		}
		resp.Workers = append(resp.Workers, wr)
		resp.Totals = sumStats(resp.Totals, wr.Stats)
	}
	resp.Totals.AttendanceRate = rate(resp.Totals)

	return resp, nil
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, -1)

	workers, departments, totals, err := s.buildRange(ctx, start, end, req.DepartmentID, req.WorkerID, req.IncludeDays)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	return report.MonthlyReport{
		Year:        req.Year,
		Month:       req.Month,
		Workers:     workers,
		Departments: departments,
		Totals:      totals,
	}, nil
}

// Range implements report.ReportService.
func (s *ReportServiceImpl) Range(ctx context.Context, req report.RangeRequest) (report.RangeReport, error) {
	if err := req.Validate(); err != nil {
		return report.RangeReport{}, err
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, s.loc)
	if err != nil {
		return report.RangeReport{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, s.loc)
	if err != nil {
		return report.RangeReport{}, fmt.Errorf("failed to parse end_date: %w", err)
	}

	workers, departments, totals, err := s.buildRange(ctx, start, end, req.DepartmentID, req.WorkerID, req.IncludeDays)
	if err != nil {
		return report.RangeReport{}, err
	}

	return report.RangeReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Workers:     workers,
		Departments: departments,
		Totals:      totals,
	}, nil
}

func (s *ReportServiceImpl) buildRange(ctx context.Context, start, end time.Time, departmentID, workerID *string, includeDays bool) ([]report.WorkerReport, []report.DepartmentSummary, report.WorkerStats, error) {
	workers, holidays, err := s.loadWindow(ctx, start, end, departmentID, workerID)
	if err != nil {
		return nil, nil, report.WorkerStats{}, err
	}

	reports := make([]report.WorkerReport, 0, len(workers))
	var totals report.WorkerStats
	deptStats := make(map[string]*report.DepartmentSummary)

	for _, w := range workers {
		wr, err := s.buildWorkerReport(ctx, w, start, end, holidays, includeDays)
		if err != nil {
			return nil, nil, report.WorkerStats{}, err
		}
		reports = append(reports, wr)
		totals = sumStats(totals, wr.Stats)

		if w.DepartmentID != nil {
			summary, ok := deptStats[*w.DepartmentID]
			if !ok {
				summary = &report.DepartmentSummary{DepartmentID: *w.DepartmentID}
				if w.DepartmentName != nil {
					summary.DepartmentName = *w.DepartmentName
				}
				deptStats[*w.DepartmentID] = summary
			}
			summary.WorkerCount++
			summary.Stats = sumStats(summary.Stats, wr.Stats)
		}
	}
	totals.AttendanceRate = rate(totals)

	departments := make([]report.DepartmentSummary, 0, len(deptStats))
	for _, summary := range deptStats {
		summary.Stats.AttendanceRate = rate(summary.Stats)
		departments = append(departments, *summary)
	}

	return reports, departments, totals, nil
}

func (s *ReportServiceImpl) loadWindow(ctx context.Context, start, end time.Time, departmentID, workerID *string) ([]worker.Worker, map[string]string, error) {
	var workers []worker.Worker
	if workerID != nil {
		w, err := s.WorkerRepository.GetByID(ctx, *workerID)
		if err != nil {
			return nil, nil, err
		}
		workers = []worker.Worker{w}
	} else {
		var err error
		workers, err = s.WorkerRepository.ListActive(ctx, departmentID)
		if err != nil {
			return nil, nil, err
		}
	}

	holidayList, err := s.HolidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	holidays := make(map[string]string, len(holidayList))
	for _, h := range holidayList {
		holidays[h.Date.Format(dateLayout)] = h.Description
	}

	return workers, holidays, nil
}

// buildWorkerReport walks the window day by day. Weekends and holidays do not
// count as working days; days after today are left out entirely.
func (s *ReportServiceImpl) buildWorkerReport(ctx context.Context, w worker.Worker, start, end time.Time, holidays map[string]string, includeDays bool) (report.WorkerReport, error) {
	records, err := s.RecordRepository.ListByWorkerBetween(ctx, w.ID, start, end)
	if err != nil {
		return report.WorkerReport{}, err
	}

	// first entry-type record per day resolves the day; last exit closes it
	entryByDay := make(map[string]attendance.Record)
	exitByDay := make(map[string]attendance.Record)
	for _, rec := range records {
		key := rec.Timestamp.Format(dateLayout)
		if rec.Status == attendance.StatusExit {
			exitByDay[key] = rec
			continue
		}
		if !rec.Status.IsEntryType() {
			continue
		}
		if _, ok := entryByDay[key]; !ok {
			entryByDay[key] = rec
		}
	}

	wr := report.WorkerReport{
		WorkerID:       w.ID,
		WorkerName:     w.FullName(),
		DepartmentName: w.DepartmentName,
	}
	if w.DepartmentID != nil {
		wr.DepartmentID = *w.DepartmentID
	}

	today := time.Now().In(s.loc).Format(dateLayout)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		if key > today {
			break
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidays[key]; ok {
			continue
		}

		wr.Stats.WorkingDays++

		status := attendance.StatusUnregistered
		var checkIn *string
		if rec, ok := entryByDay[key]; ok {
			status = rec.Status
			if rec.Source == attendance.SourceCheckIn {
				t := rec.Timestamp.Format("15:04:05")
				checkIn = &t
			}
		}

		switch status {
		case attendance.StatusOnTime:
			wr.Stats.OnTime++
		case attendance.StatusMinorDelay:
			wr.Stats.MinorDelays++
			wr.Stats.Delays++
		case attendance.StatusMajorDelay:
			wr.Stats.MajorDelays++
			wr.Stats.Delays++
		case attendance.StatusAbsence:
			wr.Stats.Absences++
		case attendance.StatusJustified:
			wr.Stats.Justified++
		default:
			wr.Stats.Unregistered++
		}

		if includeDays {
			var checkOut *string
			if rec, ok := exitByDay[key]; ok {
				t := rec.Timestamp.Format("15:04:05")
				checkOut = &t
			}
			wr.Days = append(wr.Days, report.DayStatus{
				Date:     key,
				Status:   string(status),
				CheckIn:  checkIn,
				CheckOut: checkOut,
			})
		}
	}

	wr.Stats.AttendanceRate = rate(wr.Stats)
	return wr, nil
}

func sumStats(a, b report.WorkerStats) report.WorkerStats {
	return report.WorkerStats{
		WorkingDays:  a.WorkingDays + b.WorkingDays,
		OnTime:       a.OnTime + b.OnTime,
		MinorDelays:  a.MinorDelays + b.MinorDelays,
		MajorDelays:  a.MajorDelays + b.MajorDelays,
		Delays:       a.Delays + b.Delays,
		Absences:     a.Absences + b.Absences,
		Justified:    a.Justified + b.Justified,
		Unregistered: a.Unregistered + b.Unregistered,
	}
}

// rate is on-time days over working days, 0 for an empty window.
func rate(s report.WorkerStats) float64 {
	if s.WorkingDays == 0 {
		return 0
	}
	return float64(s.OnTime) / float64(s.WorkingDays)
}
