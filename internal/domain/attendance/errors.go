package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")

	// Tolerance rule errors
	ErrToleranceRuleNotFound = errors.New("tolerance rule not found")
	ErrOverlappingRule       = errors.New("tolerance rule interval overlaps an existing rule")
	ErrInvalidRuleInterval   = errors.New("tolerance rule interval is invalid")
)
