package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

type EOIHandler struct {
	svc service.EOIService
}

func NewEOIHandler(svc service.EOIService) *EOIHandler {
	return &EOIHandler{svc: svc}
}

func (h *EOIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEOIInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}
	if input.ToID <= 0 {
		writeError(w, domain.Validationf("to_id is required"))
		return
	}

	eoi, err := h.svc.Create(r.Context(), input, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eoi)
}

func (h *EOIHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Response domain.EOIStatus `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.Validationf("invalid request body"))
		return
	}

	eoi, err := h.svc.Respond(r.Context(), id, body.Response, actorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eoi)
}

func (h *EOIHandler) List(w http.ResponseWriter, r *http.Request) {
	direction := domain.EOIDirection(strings.ToUpper(r.URL.Query().Get("direction")))
	if direction == "" {
		direction = domain.EOIDirectionSent
	}
	page, pageSize := pagination(r)

	eois, total, err := h.svc.ListForUser(r.Context(), actorFromContext(r.Context()), direction, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: eois, Total: total})
}
