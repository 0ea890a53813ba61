package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrScheduleInUse blocks deletion while a worker or a historical
	// assignment still references the schedule.
	ErrScheduleInUse      = errors.New("schedule is referenced by workers or assignment history")
	ErrAssignmentNotFound = errors.New("schedule assignment not found")
)
