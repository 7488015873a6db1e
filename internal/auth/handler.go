package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/transport"
	"github.com/frahmantamala/user-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeInvalidCredentials {
			// deliberately generic, same for unknown email and bad password
			h.WriteError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// AuthMiddleware validates the bearer token and rebuilds the principal from
// its claims. The role claim is re-extracted on every request; no user
// lookup happens here.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			h.Logger.Warn("failed to parse subject from token claims", "value", claims.Subject, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal := &Principal{
			UserID:     userID,
			Name:       claims.Name,
			Email:      claims.Email,
			RoleClaims: claims.RoleClaims(),
		}

		ctx := ContextWithUser(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
