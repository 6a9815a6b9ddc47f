package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/cropmaint/machine-maintenance/internal/auth"
	"github.com/cropmaint/machine-maintenance/internal/machine"
	"github.com/cropmaint/machine-maintenance/internal/maintenance"
	"github.com/cropmaint/machine-maintenance/internal/schedule"
	"github.com/cropmaint/machine-maintenance/internal/transport/middleware"
	"github.com/cropmaint/machine-maintenance/internal/transport/swagger"
	"github.com/cropmaint/machine-maintenance/internal/user"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes mounts the full API surface under /api/v1.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	machineHandler *machine.Handler,
	maintenanceHandler *maintenance.Handler,
	scheduleHandler *schedule.Handler,
	userHandler *user.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	if authHandler != nil {
		router.Use(authHandler.IdentityMiddleware)
	}
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
			})
		}

		if machineHandler != nil {
			r.Route("/machines", func(mr chi.Router) {
				mr.Post("/", machineHandler.CreateMachine)
				mr.Get("/", machineHandler.ListMachines)
				mr.Get("/{id}", machineHandler.GetMachine)
				mr.Put("/{id}", machineHandler.UpdateMachine)
				mr.Delete("/{id}", machineHandler.DeleteMachine)
			})
		}

		if maintenanceHandler != nil {
			r.Route("/maintenance-logs", func(lr chi.Router) {
				lr.Post("/", maintenanceHandler.CreateLog)
				lr.Get("/", maintenanceHandler.ListLogs)
				lr.Get("/{id}", maintenanceHandler.GetLog)
				lr.Put("/{id}", maintenanceHandler.UpdateLog)
				lr.Patch("/{id}/status", maintenanceHandler.UpdateLogStatus)
				lr.Delete("/{id}", maintenanceHandler.DeleteLog)
			})
		}

		if scheduleHandler != nil {
			r.Route("/schedules", func(sr chi.Router) {
				sr.Post("/", scheduleHandler.CreateSchedule)
				sr.Get("/", scheduleHandler.ListSchedules)
				sr.Get("/due", scheduleHandler.ListDueSchedules)
				sr.Get("/{id}", scheduleHandler.GetSchedule)
				sr.Put("/{id}", scheduleHandler.UpdateSchedule)
				sr.Delete("/{id}", scheduleHandler.DeleteSchedule)
			})
		}

		if userHandler != nil {
			r.Route("/users", func(ur chi.Router) {
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/", userHandler.ListUsers)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Put("/{id}", userHandler.UpdateUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
			})
		}
	})
}
