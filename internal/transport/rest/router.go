package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal/attendance"
	"github.com/frahmantamala/workforce-portal/internal/auth"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/employee"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/timelog"
	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/frahmantamala/workforce-portal/internal/transport/middleware"
	"github.com/frahmantamala/workforce-portal/internal/transport/swagger"
	"github.com/frahmantamala/workforce-portal/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Employee   *employee.Handler
	Attendance *attendance.Handler
	TimeLog    *timelog.Handler
	Docs       *swagger.Docs
}

type RouterConfig struct {
	AllowedOrigins []string
	// ProtectDirectory puts users and employees behind the guard and
	// limits their mutations to admins.
	ProtectDirectory bool
}

// RegisterAllRoutes mounts the whole API on router.
func RegisterAllRoutes(router *chi.Mux, s *store.Store, h Handlers, cfg RouterConfig, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	healthHandler := NewHealthHandler(base, s)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	if h.Docs != nil {
		router.Get("/openapi.yml", h.Docs.ServeDocument)
		router.Handle("/swagger/*", h.Docs.UI())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)

		// logout only clears the cookie, so it stays reachable while the store is down
		r.Route("/auth", func(ar chi.Router) {
			ar.Use(chiMiddleware.NoCache)
			ar.Post("/logout", h.Auth.Handle(h.Auth.Logout))
			ar.With(middleware.RequireReady(s)).Post("/login", h.Auth.Handle(h.Auth.Login))
			ar.With(middleware.RequireReady(s), h.Auth.AuthMiddleware).Get("/me", h.Auth.Handle(h.Auth.Me))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireReady(s))
			r.Use(chiMiddleware.NoCache)

			// directory routes: open unless protection is on
			r.Group(func(dr chi.Router) {
				mutate := func(fn http.HandlerFunc) http.HandlerFunc { return fn }
				if cfg.ProtectDirectory {
					dr.Use(h.Auth.AuthMiddleware)
					adminOnly := middleware.RequireRoles(userDatamodel.RoleAdmin)
					mutate = func(fn http.HandlerFunc) http.HandlerFunc {
						return adminOnly(fn).ServeHTTP
					}
				}

				dr.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.Handle(h.User.List))
					ur.Post("/", mutate(h.User.Handle(h.User.Create)))
					ur.Get("/{id}", h.User.Handle(h.User.Get))
					ur.Put("/{id}", mutate(h.User.Handle(h.User.Update)))
					ur.Delete("/{id}", mutate(h.User.Handle(h.User.Delete)))
				})

				dr.Route("/employees", func(er chi.Router) {
					er.Get("/", h.Employee.Handle(h.Employee.List))
					er.Post("/", mutate(h.Employee.Handle(h.Employee.Create)))
					er.Get("/{id}", h.Employee.Handle(h.Employee.Get))
					er.Put("/{id}", mutate(h.Employee.Handle(h.Employee.Update)))
					er.Delete("/{id}", mutate(h.Employee.Handle(h.Employee.Delete)))
				})
			})

			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				pr.Route("/attendance", func(ar chi.Router) {
					ar.Get("/", h.Attendance.Handle(h.Attendance.List))
					ar.Get("/export", h.Attendance.Handle(h.Attendance.Export))
					ar.Post("/", h.Attendance.Handle(h.Attendance.Create))
					ar.Get("/{id}", h.Attendance.Handle(h.Attendance.Get))
					ar.Put("/{id}", h.Attendance.Handle(h.Attendance.Update))
					ar.Delete("/{id}", h.Attendance.Handle(h.Attendance.Delete))
				})

				pr.Route("/timelogs", func(tr chi.Router) {
					tr.Get("/", h.TimeLog.Handle(h.TimeLog.List))
					tr.Post("/", h.TimeLog.Handle(h.TimeLog.Create))
					tr.Get("/{id}", h.TimeLog.Handle(h.TimeLog.Get))
					tr.Put("/{id}", h.TimeLog.Handle(h.TimeLog.Update))
					tr.Delete("/{id}", h.TimeLog.Handle(h.TimeLog.Delete))
				})
			})
		})
	})
}
