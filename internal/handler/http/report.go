package http

import (
	"net/http"
	"strconv"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/report"
	"github.com/timecheck-hr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Daily implements ReportHandler.
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Parameter 'date' is required", nil)
		return
	}

	var departmentID *string
	if v := r.URL.Query().Get("department_id"); v != "" {
		departmentID = &v
	}

	result, err := h.reportService.Daily(r.Context(), date, departmentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Parameter 'year' is required", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "Parameter 'month' is required", nil)
		return
	}

	req := report.MonthlyRequest{
		Year:        year,
		Month:       month,
		IncludeDays: r.URL.Query().Get("include_days") == "true",
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		req.DepartmentID = &v
	}
	if v := r.URL.Query().Get("worker_id"); v != "" {
		req.WorkerID = &v
	}

	result, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Range implements ReportHandler.
func (h *reportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	req := report.RangeRequest{
		StartDate:   r.URL.Query().Get("start_date"),
		EndDate:     r.URL.Query().Get("end_date"),
		IncludeDays: r.URL.Query().Get("include_days") == "true",
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		req.DepartmentID = &v
	}
	if v := r.URL.Query().Get("worker_id"); v != "" {
		req.WorkerID = &v
	}

	result, err := h.reportService.Range(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
