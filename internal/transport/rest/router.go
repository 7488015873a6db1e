package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-management/internal/accesslevel"
	"github.com/frahmantamala/user-management/internal/auth"
	"github.com/frahmantamala/user-management/internal/transport/middleware"
	"github.com/frahmantamala/user-management/internal/transport/swagger"
	"github.com/frahmantamala/user-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires handlers behind their minimum-level gates. Four
// gates exist: administrator-only, manager-or-above, common-user-or-above
// and viewer-or-above (any authenticated caller with a mapped role).
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	rbac *auth.RBACAuthorization,
	userHandler *user.Handler,
	levelHandler *accesslevel.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid session token.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Group(func(vr chi.Router) {
				vr.Use(rbac.RequireViewer())
				vr.Post("/users/register", userHandler.Register)
				vr.Get("/users/me", userHandler.GetCurrentUser)
			})

			pr.Group(func(cr chi.Router) {
				cr.Use(rbac.RequireCommonUser())
				cr.Get("/users", userHandler.GetUsers)
				cr.Get("/users/{id}", userHandler.GetUser)
				cr.Get("/access-levels", levelHandler.GetAccessLevels)
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(rbac.RequireManager())
				mr.Get("/users/{id}/access-levels", levelHandler.GetUserAccessLevels)
				mr.Get("/access-levels/check", levelHandler.CheckAccessLevel)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdministrator())
				ar.Post("/access-levels", levelHandler.CreateAccessLevel)
				ar.Post("/access-levels/assign", levelHandler.AssignAccessLevel)
				ar.Post("/access-levels/revoke", levelHandler.RevokeAccessLevel)
			})
		})
	})
}
