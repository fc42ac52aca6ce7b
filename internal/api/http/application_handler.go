package http

import (
	"encoding/json"
	"net/http"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	if input.TeamID <= 0 || input.OpportunityID <= 0 {
		writeError(w, domain.Validationf("team_id and opportunity_id are required"))
		return
	}

	app, err := h.svc.Create(r.Context(), input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := h.svc.GetByID(r.Context(), id, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ApplicationHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.UpdateContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	app, err := h.svc.UpdateContent(r.Context(), id, input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	if input.NewStatus == "" {
		writeError(w, domain.Validationf("new_status is required"))
		return
	}
	app, err := h.svc.UpdateStatus(r.Context(), id, input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Withdraw(r.Context(), id, actorFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ApplicationHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.ScheduleInterviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	app, err := h.svc.ScheduleInterview(r.Context(), id, input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	app, err := h.svc.AddInterviewFeedback(r.Context(), id, input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) MakeOffer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.OfferInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	app, err := h.svc.MakeOffer(r.Context(), id, input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))

	apps, total, err := h.svc.ListByTeam(r.Context(), id, status, page, pageSize, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: apps, Total: total})
}

func (h *ApplicationHandler) ListByOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))

	apps, total, err := h.svc.ListByOpportunity(r.Context(), id, status, page, pageSize, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: apps, Total: total})
}
