package report

import (
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

// DayStatus is the resolved status of one worker on one calendar day
// after entry records, justifications and the schedule are combined.
type DayStatus struct {
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
}

// WorkerStats tallies a worker's resolved days over a reporting window.
// AttendanceRate is on-time days over working days and is 0 when the
// window contains no working days.
type WorkerStats struct {
	WorkingDays    int     `json:"working_days"`
	OnTime         int     `json:"on_time"`
	MinorDelays    int     `json:"minor_delays"`
	MajorDelays    int     `json:"major_delays"`
	Delays         int     `json:"delays"`
	Absences       int     `json:"absences"`
	Justified      int     `json:"justified"`
	Unregistered   int     `json:"unregistered"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type WorkerReport struct {
	WorkerID       string      `json:"worker_id"`
	WorkerName     string      `json:"worker_name"`
	DepartmentID   string      `json:"department_id"`
	DepartmentName *string     `json:"department_name,omitempty"`
	Stats          WorkerStats `json:"stats"`
	Days           []DayStatus `json:"days,omitempty"`
}

type DepartmentSummary struct {
	DepartmentID   string      `json:"department_id"`
	DepartmentName string      `json:"department_name"`
	WorkerCount    int         `json:"worker_count"`
	Stats          WorkerStats `json:"stats"`
}

type DailyReport struct {
	Date    string         `json:"date"`
	Holiday *string        `json:"holiday,omitempty"`
	Workers []WorkerReport `json:"workers"`
	Totals  WorkerStats    `json:"totals"`
}

type MonthlyReport struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	Workers     []WorkerReport      `json:"workers"`
	Departments []DepartmentSummary `json:"departments"`
	Totals      WorkerStats         `json:"totals"`
}

type RangeReport struct {
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Workers     []WorkerReport      `json:"workers"`
	Departments []DepartmentSummary `json:"departments"`
	Totals      WorkerStats         `json:"totals"`
}

type RangeRequest struct {
	StartDate    string
	EndDate      string
	DepartmentID *string
	WorkerID     *string
	IncludeDays  bool
}

func (r RangeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) == 0 && r.EndDate < r.StartDate {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not precede start_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyRequest struct {
	Year         int
	Month        int
	DepartmentID *string
	WorkerID     *string
	IncludeDays  bool
}

func (r MonthlyRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
