package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/security"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

type actorKeyType struct{}

var actorKey = actorKeyType{}

// NewRouter wires all HTTP handlers behind bearer-token auth.
func NewRouter(
	tokenManager security.TokenManager,
	appSvc service.ApplicationService,
	eoiSvc service.EOIService,
	noteSvc service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(authMiddleware(tokenManager))

	appHandler := NewApplicationHandler(appSvc)
	r.HandleFunc("/api/applications", appHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/applications/{id}", appHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/applications/{id}", appHandler.Withdraw).Methods(http.MethodDelete)
	r.HandleFunc("/api/applications/{id}/content", appHandler.UpdateContent).Methods(http.MethodPatch)
	r.HandleFunc("/api/applications/{id}/status", appHandler.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/applications/{id}/interview", appHandler.ScheduleInterview).Methods(http.MethodPost)
	r.HandleFunc("/api/applications/{id}/feedback", appHandler.AddFeedback).Methods(http.MethodPost)
	r.HandleFunc("/api/applications/{id}/offer", appHandler.MakeOffer).Methods(http.MethodPost)
	r.HandleFunc("/api/teams/{id}/applications", appHandler.ListByTeam).Methods(http.MethodGet)
	r.HandleFunc("/api/opportunities/{id}/applications", appHandler.ListByOpportunity).Methods(http.MethodGet)

	eoiHandler := NewEOIHandler(eoiSvc)
	r.HandleFunc("/api/eoi", eoiHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/eoi", eoiHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/eoi/{id}/respond", eoiHandler.Respond).Methods(http.MethodPost)

	noteHandler := NewNotificationHandler(noteSvc)
	r.HandleFunc("/api/notifications", noteHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}

func authMiddleware(tokenManager security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.Unauthorizedf("Missing bearer token"))
				return
			}
			claims, err := tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.Unauthorizedf("Invalid bearer token"))
				return
			}
			ctx := context.WithValue(r.Context(), actorKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func actorFromContext(ctx context.Context) int32 {
	if v := ctx.Value(actorKey); v != nil {
		if id, ok := v.(int32); ok {
			return id
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUnauthorized:
		status = http.StatusForbidden
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindValidation:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "kind": string(kind)})
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid id %q", raw)
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
