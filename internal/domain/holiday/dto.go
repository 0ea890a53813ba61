package holiday

import (
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

type HolidayRequest struct {
	ID          string `json:"-"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (r HolidayRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type HolidayFilter struct {
	Year  *int
	Month *int
}
