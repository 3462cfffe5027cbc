package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/health", s.handleHealth)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/protected", s.handleProtected)

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", s.handleListRoles)
				r.Post("/", s.handleCreateRole)
				r.Get("/id/{id}", s.handleGetRole)
				r.Get("/name/{name}", s.handleGetRoleByName)
				r.Put("/{id}", s.handleUpdateRole)
				r.Delete("/{id}", s.handleDeleteRole)
			})

			r.Route("/subscribers", func(r chi.Router) {
				r.Get("/", s.handleListSubscribers)
				r.Post("/", s.handleCreateSubscriber)
				r.Get("/phone/{phone}", s.handleGetSubscriberByPhone)
				r.Get("/{id}", s.handleGetSubscriber)
				r.Put("/{id}", s.handleUpdateSubscriber)
				r.Delete("/{id}", s.handleDeleteSubscriber)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Get("/id/{id}", s.handleGetUser)
				r.Get("/username/{username}", s.handleGetUserByUsername)
				r.Get("/email/{email}", s.handleGetUserByEmail)
				r.Put("/{id}", s.handleUpdateUser)
				r.Delete("/{id}", s.handleDeleteUser)
			})

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Post("/", s.handleCreateDevice)
				r.Get("/id/{id}", s.handleGetDevice)
				r.Get("/mac/{mac}", s.handleGetDeviceByMac)
				r.Put("/{id}", s.handleUpdateDevice)
				r.Delete("/{id}", s.handleDeleteDevice)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", s.handleListAssignments)
				r.Post("/", s.handleCreateAssignment)
				r.Get("/user/{userId}", s.handleListAssignmentsByUser)
				r.Get("/device/{deviceId}", s.handleListAssignmentsByDevice)
				r.Get("/exists/{userId}/{deviceId}", s.handleAssignmentExists)
				r.Delete("/{userId}/{deviceId}", s.handleDeleteAssignment)
			})
		})
	})

	return r
}
