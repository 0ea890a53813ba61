package worker

import (
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"department_id,omitempty"`
	ScheduleID   *string `json:"schedule_id,omitempty"`
	Role         string  `json:"role,omitempty"`
	Password     string  `json:"password,omitempty"`
}

func (r CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if r.Role != "" && r.Role != string(RoleAdmin) && r.Role != string(RoleWorker) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or worker"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkerRequest is a typed patch: only non-nil fields are applied.
type UpdateWorkerRequest struct {
	ID           string  `json:"-"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Position     *string `json:"position,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	ScheduleID   *string `json:"schedule_id,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

func (r UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerFilter struct {
	DepartmentID *string
	Active       *bool
	Page         int
	Limit        int
}

type WorkerResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	ScheduleID     *string `json:"schedule_id,omitempty"`
	Role           string  `json:"role"`
	Active         bool    `json:"active"`
}

type ListWorkersResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Workers    []WorkerResponse `json:"workers"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
