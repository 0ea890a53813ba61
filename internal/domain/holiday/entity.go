package holiday

import "time"

// Holiday marks one calendar date as non-working. Time-of-day is irrelevant;
// dates are stored truncated to midnight.
type Holiday struct {
	ID          string
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
