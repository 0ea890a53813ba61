package attendance

import "time"

// Status is the classification assigned to an attendance record.
type Status string

const (
	StatusOnTime     Status = "ON_TIME"
	StatusMinorDelay Status = "MINOR_DELAY"
	StatusMajorDelay Status = "MAJOR_DELAY"
	StatusAbsence    Status = "ABSENCE"
	StatusJustified  Status = "JUSTIFIED"
	StatusExit       Status = "EXIT"

	// StatusUnregistered never appears on a stored record; reports use it
	// for working days with no record at all.
	StatusUnregistered Status = "UNREGISTERED"
)

var StatusValues = []string{
	string(StatusOnTime),
	string(StatusMinorDelay),
	string(StatusMajorDelay),
	string(StatusAbsence),
	string(StatusJustified),
	string(StatusExit),
}

// IsEntryType reports whether the status marks the record as a day's entry.
// Everything except EXIT counts as an entry.
func (s Status) IsEntryType() bool {
	switch s {
	case StatusOnTime, StatusMinorDelay, StatusMajorDelay, StatusAbsence, StatusJustified:
		return true
	}
	return false
}

// IsDelay reports whether the status is one of the graduated lateness buckets.
func (s Status) IsDelay() bool {
	return s == StatusMinorDelay || s == StatusMajorDelay
}

// Source records how an attendance record came to exist. Reconciliation needs
// the distinction: revoking a justification deletes synthesized records but
// reclassifies real check-ins.
type Source string

const (
	SourceCheckIn       Source = "CHECK_IN"
	SourceJustification Source = "JUSTIFICATION"
)

// Kind distinguishes an entry record from an exit record within a day.
type Kind string

const (
	KindEntry Kind = "ENTRY"
	KindExit  Kind = "EXIT"
)

// Record is one attendance event. Timestamp is civil local time; no offset is
// persisted. Multiple records per worker per day form alternating entry/exit
// pairs.
type Record struct {
	ID        string
	WorkerID  string
	Timestamp time.Time
	Status    Status
	Source    Source
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}

// ToleranceRule maps an inclusive minutes-late interval to a status.
type ToleranceRule struct {
	ID          string
	Description string
	Status      Status
	MinMinutes  int
	MaxMinutes  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether two rules share at least one integer minute.
func (r ToleranceRule) Overlaps(other ToleranceRule) bool {
	return r.MinMinutes <= other.MaxMinutes && other.MinMinutes <= r.MaxMinutes
}
