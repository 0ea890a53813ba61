package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/auth"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/justification"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, worker.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleInUse):
		Conflict(w, "Schedule is assigned to one or more workers")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrToleranceRuleNotFound):
		NotFound(w, "Tolerance rule not found")
	case errors.Is(err, attendance.ErrOverlappingRule):
		Conflict(w, "Rule interval overlaps an existing rule")
	case errors.Is(err, attendance.ErrInvalidRuleInterval):
		BadRequest(w, "Invalid rule interval", nil)

	// Justification domain errors
	case errors.Is(err, justification.ErrJustificationNotFound):
		NotFound(w, "Justification not found")
	case errors.Is(err, justification.ErrDuplicateJustification):
		Conflict(w, "Worker already has a justification for this date")
	case errors.Is(err, justification.ErrReasonRuleNotFound):
		NotFound(w, "Justification rule not found")
	case errors.Is(err, justification.ErrReasonRuleInUse):
		Conflict(w, "Justification rule is referenced by existing justifications")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDuplicateHoliday):
		Conflict(w, "A holiday already exists on this date")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
