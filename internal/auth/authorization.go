package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-management/internal/accesslevel"
)

// Authorize decides whether a set of role claim strings satisfies the
// required minimum level. An empty claim set denies. Claim strings that do
// not map to a known level are discarded rather than treated as errors; the
// first satisfying claim short-circuits. Stateless, evaluated per request.
func Authorize(roleClaims []string, required accesslevel.Level) bool {
	if len(roleClaims) == 0 {
		return false
	}

	for _, claim := range roleClaims {
		level, ok := accesslevel.LevelFromName(claim)
		if !ok {
			continue
		}
		if level.Satisfies(required) {
			return true
		}
	}

	return false
}

// The four named minimum-level checks used at protected entry points.

func IsAdministrator(roleClaims []string) bool {
	return Authorize(roleClaims, accesslevel.Administrator)
}

func IsManagerOrAbove(roleClaims []string) bool {
	return Authorize(roleClaims, accesslevel.Manager)
}

func IsCommonUserOrAbove(roleClaims []string) bool {
	return Authorize(roleClaims, accesslevel.CommonUser)
}

// IsViewerOrAbove passes for any authenticated caller holding a mapped level.
func IsViewerOrAbove(roleClaims []string) bool {
	return Authorize(roleClaims, accesslevel.Viewer)
}

// RBACAuthorization wires the engine into chi middleware.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) requireLevel(required accesslevel.Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := UserFromContext(r.Context())
			if !ok || principal == nil {
				ra.logger.Warn("authorization check failed: principal not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !Authorize(principal.RoleClaims, required) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient access level",
					"user_id", principal.UserID,
					"required_level", required.String(),
					"role_claims", principal.RoleClaims)
				http.Error(w, "Forbidden: insufficient access level", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdministrator() func(http.Handler) http.Handler {
	return ra.requireLevel(accesslevel.Administrator)
}

func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.requireLevel(accesslevel.Manager)
}

func (ra *RBACAuthorization) RequireCommonUser() func(http.Handler) http.Handler {
	return ra.requireLevel(accesslevel.CommonUser)
}

func (ra *RBACAuthorization) RequireViewer() func(http.Handler) http.Handler {
	return ra.requireLevel(accesslevel.Viewer)
}
