package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)

	// GetByDate looks up by calendar date; time-of-day is ignored.
	// Returns nil when the date has no holiday.
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)

	List(ctx context.Context, filter HolidayFilter) ([]Holiday, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id string) error
}
