package schedule

import (
	"time"

	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

// DayTimesRequest is the entry/exit pair for one weekday in a create or
// update request, as HH:MM strings.
type DayTimesRequest struct {
	Entry string `json:"entry"`
	Exit  string `json:"exit"`
}

type CreateScheduleRequest struct {
	Name      string          `json:"name"`
	Monday    DayTimesRequest `json:"monday"`
	Tuesday   DayTimesRequest `json:"tuesday"`
	Wednesday DayTimesRequest `json:"wednesday"`
	Thursday  DayTimesRequest `json:"thursday"`
	Friday    DayTimesRequest `json:"friday"`
}

func (r CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	errs = append(errs, validateDays(r.days())...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateScheduleRequest) days() map[time.Weekday]DayTimesRequest {
	return map[time.Weekday]DayTimesRequest{
		time.Monday:    r.Monday,
		time.Tuesday:   r.Tuesday,
		time.Wednesday: r.Wednesday,
		time.Thursday:  r.Thursday,
		time.Friday:    r.Friday,
	}
}

// ToSchedule converts a validated request into an entity.
func (r CreateScheduleRequest) ToSchedule() (Schedule, error) {
	days := make(map[time.Weekday]DaySpan, len(Weekdays))
	for weekday, times := range r.days() {
		entry, err := ParseTimeOfDay(times.Entry)
		if err != nil {
			return Schedule{}, err
		}
		exit, err := ParseTimeOfDay(times.Exit)
		if err != nil {
			return Schedule{}, err
		}
		days[weekday] = DaySpan{Entry: entry, Exit: exit}
	}
	return Schedule{Name: r.Name, Days: days}, nil
}

// UpdateScheduleRequest replaces the full weekly template; partial updates of
// individual days are not supported.
type UpdateScheduleRequest struct {
	ID string `json:"-"`
	CreateScheduleRequest
}

func validateDays(days map[time.Weekday]DayTimesRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, weekday := range Weekdays {
		times := days[weekday]
		field := weekdayField(weekday)
		if !validator.IsValidClockTime(times.Entry) {
			errs = append(errs, validator.ValidationError{Field: field + ".entry", Message: "must be HH:MM"})
			continue
		}
		if !validator.IsValidClockTime(times.Exit) {
			errs = append(errs, validator.ValidationError{Field: field + ".exit", Message: "must be HH:MM"})
			continue
		}
		entry, _ := ParseTimeOfDay(times.Entry)
		exit, _ := ParseTimeOfDay(times.Exit)
		if !entry.Before(exit) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "exit must be later than entry"})
		}
	}
	return errs
}

func weekdayField(d time.Weekday) string {
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

type DayTimesResponse struct {
	Entry string `json:"entry"`
	Exit  string `json:"exit"`
}

type ScheduleResponse struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name"`
	Days      map[string]DayTimesResponse `json:"days"`
	CreatedAt string                      `json:"created_at"`
	UpdatedAt string                      `json:"updated_at"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	WorkerID      string  `json:"worker_id"`
	ScheduleID    string  `json:"schedule_id"`
	ScheduleName  *string `json:"schedule_name,omitempty"`
	EffectiveFrom string  `json:"effective_from"`
}
