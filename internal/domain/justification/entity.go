package justification

import "time"

// Justification excuses one worker for one calendar date. At most one may
// exist per (worker, date).
type Justification struct {
	ID        string
	WorkerID  string
	Date      time.Time
	RuleID    string
	CreatedAt time.Time

	// DTO
	WorkerName      *string
	RuleDescription *string
}

// ReasonRule is a catalog entry naming why an absence or delay is excused.
type ReasonRule struct {
	ID          string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
