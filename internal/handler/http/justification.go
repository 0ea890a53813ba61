package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/justification"
	"github.com/timecheck-hr/attendance-backend-go/internal/handler/http/response"
)

type JustificationHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)

	ListRules(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
	UpdateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)
}

type justificationHandlerImpl struct {
	justificationService justification.JustificationService
}

func NewJustificationHandler(justificationService justification.JustificationService) JustificationHandler {
	return &justificationHandlerImpl{justificationService: justificationService}
}

// Apply implements JustificationHandler.
func (h *justificationHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req justification.ApplyJustificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.justificationService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification applied", result)
}

// Get implements JustificationHandler.
func (h *justificationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.justificationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements JustificationHandler.
func (h *justificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := justification.JustificationFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("worker_id"); v != "" {
		filter.WorkerID = &v
	}
	if v := r.URL.Query().Get("rule_id"); v != "" {
		filter.RuleID = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.justificationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Revoke implements JustificationHandler.
func (h *justificationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.justificationService.Revoke(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification revoked", nil)
}

// ListRules implements JustificationHandler.
func (h *justificationHandlerImpl) ListRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.justificationService.ListReasonRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRule implements JustificationHandler.
func (h *justificationHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req justification.ReasonRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.justificationService.CreateReasonRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification rule created", result)
}

// UpdateRule implements JustificationHandler.
func (h *justificationHandlerImpl) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req justification.ReasonRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.justificationService.UpdateReasonRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteRule implements JustificationHandler.
func (h *justificationHandlerImpl) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.justificationService.DeleteReasonRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification rule deleted", nil)
}
