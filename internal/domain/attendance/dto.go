package attendance

import (
	"time"

	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

const timestampLayout = "2006-01-02 15:04:05"

// CheckInRequest is a raw clock event. Timestamp accepts RFC3339 or local
// "2006-01-02 15:04:05"; absent, the server clock is used.
type CheckInRequest struct {
	WorkerID  string `json:"worker_id"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id is required"})
	}
	if r.Timestamp != "" {
		if _, err := ParseTimestamp(r.Timestamp); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be RFC3339 or YYYY-MM-DD HH:MM:SS"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseTimestamp accepts the two wire formats clock devices send. A bare
// local timestamp is taken as already being in the system's civil zone.
func ParseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(timestampLayout, s)
}

// UpdateRecordRequest is an administrative correction. Only the listed fields
// are mutable.
type UpdateRecordRequest struct {
	ID        string  `json:"-"`
	Timestamp *string `json:"timestamp,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (r UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Timestamp != nil {
		if _, err := ParseTimestamp(*r.Timestamp); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be RFC3339 or YYYY-MM-DD HH:MM:SS"})
		}
	}
	if r.Status != nil && !Status(*r.Status).IsEntryType() && Status(*r.Status) != StatusExit {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordFilter struct {
	WorkerID     *string
	DepartmentID *string
	Status       *string
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
}

func (f RecordFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.StartDate != nil && !validator.IsValidDate(*f.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if f.EndDate != nil && !validator.IsValidDate(*f.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName *string `json:"worker_name,omitempty"`
	Timestamp  string  `json:"timestamp"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Kind       string  `json:"kind"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// TodayWorkerRow is one active worker's consolidated state for the current
/// day: first entry-type record, exit record, and overall status.
type TodayWorkerRow struct {
	WorkerID     string  `json:"worker_id"`
	Name         string  `json:"name"`
	Department   *string `json:"department,omitempty"`
	EntryTime    *string `json:"entry_time,omitempty"`
	ExitTime     *string `json:"exit_time,omitempty"`
	Status       string  `json:"status"`
	TotalRecords int     `json:"total_records"`
}

type TodayTallies struct {
	TotalWorkers int `json:"total_workers"`
	OnTime       int `json:"on_time"`
	Delays       int `json:"delays"`
	Absences     int `json:"absences"`
	Justified    int `json:"justified"`
	Unregistered int `json:"unregistered"`
}

type TodayResponse struct {
	Date    string           `json:"date"`
	Tallies TodayTallies     `json:"tallies"`
	Workers []TodayWorkerRow `json:"workers"`
}

// Tolerance rule DTOs

type ToleranceRuleRequest struct {
	ID          string `json:"-"`
	Description string `json:"description"`
	Status      string `json:"status"`
	MinMinutes  int    `json:"min_minutes"`
	MaxMinutes  int    `json:"max_minutes"`
}

func (r ToleranceRuleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	switch Status(r.Status) {
	case StatusOnTime, StatusMinorDelay, StatusMajorDelay, StatusAbsence:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be ON_TIME, MINOR_DELAY, MAJOR_DELAY or ABSENCE"})
	}
	if r.MinMinutes < 1 {
		errs = append(errs, validator.ValidationError{Field: "min_minutes", Message: "must be at least 1"})
	}
	if r.MaxMinutes < r.MinMinutes {
		errs = append(errs, validator.ValidationError{Field: "max_minutes", Message: "must not be smaller than min_minutes"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r ToleranceRuleRequest) ToRule() ToleranceRule {
	return ToleranceRule{
		ID:          r.ID,
		Description: r.Description,
		Status:      Status(r.Status),
		MinMinutes:  r.MinMinutes,
		MaxMinutes:  r.MaxMinutes,
	}
}

type ToleranceRuleResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	MinMinutes  int    `json:"min_minutes"`
	MaxMinutes  int    `json:"max_minutes"`
}
