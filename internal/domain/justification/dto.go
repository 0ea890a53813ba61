package justification

import (
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

type ApplyJustificationRequest struct {
	WorkerID string `json:"worker_id"`
	Date     string `json:"date"`
	RuleID   string `json:"rule_id"`
}

func (r ApplyJustificationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.RuleID) {
		errs = append(errs, validator.ValidationError{Field: "rule_id", Message: "rule_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JustificationFilter struct {
	WorkerID  *string
	RuleID    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type JustificationResponse struct {
	ID              string  `json:"id"`
	WorkerID        string  `json:"worker_id"`
	WorkerName      *string `json:"worker_name,omitempty"`
	Date            string  `json:"date"`
	RuleID          string  `json:"rule_id"`
	RuleDescription *string `json:"rule_description,omitempty"`
}

type ListJustificationsResponse struct {
	TotalCount     int64                   `json:"total_count"`
	Page           int                     `json:"page"`
	Limit          int                     `json:"limit"`
	TotalPages     int                     `json:"total_pages"`
	Justifications []JustificationResponse `json:"justifications"`
}

type ReasonRuleRequest struct {
	ID          string `json:"-"`
	Description string `json:"description"`
}

func (r ReasonRuleRequest) Validate() error {
	if validator.IsEmpty(r.Description) {
		return validator.ValidationErrors{{Field: "description", Message: "description is required"}}
	}
	return nil
}

type ReasonRuleResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
