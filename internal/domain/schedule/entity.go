package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date. Schedules store entry and
// exit times as civil times; the calendar date is supplied by the caller.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the wall-clock time on the given calendar date in loc.
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// DaySpan is the expected entry/exit pair for one weekday.
type DaySpan struct {
	Entry TimeOfDay
	Exit  TimeOfDay
}

// Schedule is a named weekly template. Days holds Monday through Friday only;
// Saturday and Sunday are implicitly non-working.
type Schedule struct {
	ID        string
	Name      string
	Days      map[time.Weekday]DaySpan
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Weekdays are the days a schedule defines, in template order.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Assignment is one immutable entry in a worker's schedule history, appended
// whenever the worker's schedule changes.
type Assignment struct {
	ID            string
	WorkerID      string
	ScheduleID    string
	EffectiveFrom time.Time
	CreatedAt     time.Time

	// DTO
	ScheduleName *string
}

// Expectation is the outcome of resolving a worker's schedule for a date.
type Expectation int

const (
	// ExpectationWorking means the date has a defined entry time.
	ExpectationWorking Expectation = iota
	// ExpectationNonWorking means the date is a Saturday or Sunday.
	ExpectationNonWorking
	// ExpectationUnscheduled means the worker has no schedule for the date.
	// Callers treat this permissively and default to on-time.
	ExpectationUnscheduled
)

// Resolve looks up the expected entry time for a date. A nil schedule yields
// ExpectationUnscheduled rather than an error.
func Resolve(s *Schedule, date time.Time) (TimeOfDay, Expectation) {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return TimeOfDay{}, ExpectationNonWorking
	}
	if s == nil {
		return TimeOfDay{}, ExpectationUnscheduled
	}
	span, ok := s.Days[date.Weekday()]
	if !ok {
		return TimeOfDay{}, ExpectationUnscheduled
	}
	return span.Entry, ExpectationWorking
}
