package rest

import (
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/frahmantamala/timesheet-tracker/internal/auth"
	"github.com/frahmantamala/timesheet-tracker/internal/dashboard"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
	"github.com/frahmantamala/timesheet-tracker/internal/transport/middleware"
	"github.com/frahmantamala/timesheet-tracker/internal/transport/swagger"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	User      *user.Handler
	Project   *project.Handler
	Timesheet *timesheet.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	rbac := auth.NewRBACAuthorization(logger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.TraceIDHeader},
		ExposedHeaders: []string{middleware.TraceIDHeader},
		MaxAge:         300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", h.Auth.Register)
			ar.Post("/login", h.Auth.Login)
			ar.With(h.Auth.AuthMiddleware).Get("/me", h.Auth.Me)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.With(rbac.RequireListUsers()).Get("/users", h.User.ListUsers)

			pr.Route("/projects", func(pjr chi.Router) {
				pjr.Get("/", h.Project.ListProjects)
				pjr.Get("/{id}", h.Project.GetProject)

				pjr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageProjects())
					mr.Post("/", h.Project.CreateProject)
					mr.Put("/{id}", h.Project.ReplaceProject)
					mr.Delete("/{id}", h.Project.DeleteProject)
				})
			})

			pr.Route("/timesheets", func(tr chi.Router) {
				tr.Post("/", h.Timesheet.CreateTimesheet)
				tr.Get("/", h.Timesheet.ListTimesheets)
				tr.Get("/{id}", h.Timesheet.GetTimesheet)
				tr.Put("/{id}", h.Timesheet.UpdateTimesheet)
				tr.Delete("/{id}", h.Timesheet.DeleteTimesheet)

				tr.With(rbac.RequireApproveTimesheet()).Post("/{id}/approve", h.Timesheet.ApproveTimesheet)
			})

			pr.Get("/dashboard/summary", h.Dashboard.GetSummary)
		})
	})
}
