package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the HTTP router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(apiMiddleware.ErrorDetail(app.config.Server.IsDevelopment()))

	if origin := app.config.Server.CORSOrigin; origin != "" {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: []string{origin},
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"Content-Type", apiMiddleware.APIKeyHeader},
			ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		}).Handler)
	}

	// Create handlers
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	healthHandler := api.NewHealthHandler(app.provider, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.config.Auth.APIKey, app.logger)

	// Health endpoints never need credentials; /health never touches the database
	r.Get("/health", healthHandler.Health)
	r.Get("/health/database", healthHandler.DatabaseHealth)

	// Groups keep middleware off unmatched paths, so unknown routes get 404
	// and missing credentials get 401 even while the database is down.
	requireDB := apiMiddleware.EnsureDatabase(app.provider)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			// Public reads
			r.Group(func(r chi.Router) {
				r.Use(requireDB)

				r.Get("/", taskHandler.ListTasks)
				r.Get("/status/{status}", taskHandler.ListTasksByStatus)
				r.Get("/search/title", taskHandler.SearchTasksByTitle)
				r.Get("/{id}", taskHandler.GetTask)
			})

			// Mutations require the API key
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(requireDB)

				r.Post("/", taskHandler.CreateTask)
				r.Put("/{id}", taskHandler.ReplaceTask)
				r.Patch("/{id}", taskHandler.PatchTask)
				r.Delete("/{id}", taskHandler.DeleteTask)
				r.Put("/{id}/complete", taskHandler.CompleteTask)
				r.Put("/{id}/progress", taskHandler.UpdateProgress)
				r.Post("/{id}/assign", taskHandler.AssignTask)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(requireDB)

				r.Post("/", userHandler.CreateUser)
				r.Get("/{userId}", userHandler.GetUser)
				r.Get("/{userId}/tasks", taskHandler.ListTasksForUser)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, api.LabelNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, api.LabelNotAllowed,
			"Method not allowed")
	})

	return r
}
