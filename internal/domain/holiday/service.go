package holiday

import "context"

// HolidayService maintains the holiday registry. At most one holiday may
// exist per calendar date; create and update both enforce it.
type HolidayService interface {
	CreateHoliday(ctx context.Context, req HolidayRequest) (HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	UpdateHoliday(ctx context.Context, req HolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
