package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/user-management/internal/auth"
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

// Register handles POST /users/register. The caller's administrator status
// is derived from the token claims already in the request context and
// handed to the service as a plain input.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	callerIsAdministrator := auth.IsAdministrator(principal.RoleClaims)

	created, err := h.Service.CreateUser(r.Context(), dto, callerIsAdministrator)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetUsers handles GET /users
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, u.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetByID(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(r.Context(), principal.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}
