package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the application router. GET routes need the read
// scope; all other /v1 routes need the write scope.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Handler)
	r.Use(middleware.Recoverer)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	read := authMiddleware.RequireScope(app.config.Auth.ReadScope)
	write := authMiddleware.RequireScope(app.config.Auth.WriteScope)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.With(write).Post("/users", userHandler.CreateUser)
		r.With(read).Get("/user", userHandler.GetUserByUsername)
		r.With(read).Get("/user/id", userHandler.GetUserByID)

		r.With(write).Post("/create-task", taskHandler.CreateTask)
		r.With(read).Get("/tasks", taskHandler.GetTasksByUser)
		r.With(read).Get("/users/{userId}/tasks/{taskId}", taskHandler.GetTask)
		r.With(write).Put("/tasks/{id}", taskHandler.UpdateTask)
		r.With(write).Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
