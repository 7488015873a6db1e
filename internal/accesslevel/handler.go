package accesslevel

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/user-management/internal/transport"
	"github.com/frahmantamala/user-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetAccessLevels handles GET /access-levels
func (h *Handler) GetAccessLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.Service.GetAllLevels(r.Context())
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AccessLevelsResponse{AccessLevels: levels})
}

// CreateAccessLevel handles POST /access-levels
func (h *Handler) CreateAccessLevel(w http.ResponseWriter, r *http.Request) {
	var dto CreateAccessLevelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := h.Service.CreateLevel(r.Context(), dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, level)
}

// AssignAccessLevel handles POST /access-levels/assign
func (h *Handler) AssignAccessLevel(w http.ResponseWriter, r *http.Request) {
	var dto AssignAccessLevelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.Assign(r.Context(), dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, assignment)
}

// RevokeAccessLevel handles POST /access-levels/revoke
func (h *Handler) RevokeAccessLevel(w http.ResponseWriter, r *http.Request) {
	var dto RevokeAccessLevelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Revoke(r.Context(), dto); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUserAccessLevels handles GET /users/{id}/access-levels
func (h *Handler) GetUserAccessLevels(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	assignments, err := h.Service.GetUserLevels(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, UserAccessLevelsResponse{UserID: userID, AccessLevels: assignments})
}

// CheckAccessLevel handles GET /access-levels/check?user_id=&access_level_id=
func (h *Handler) CheckAccessLevel(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	levelID, err := strconv.ParseInt(r.URL.Query().Get("access_level_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid access_level_id")
		return
	}

	hasLevel, err := h.Service.HasActiveLevel(r.Context(), userID, levelID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CheckResponse{UserID: userID, AccessLevelID: levelID, HasLevel: hasLevel})
}
