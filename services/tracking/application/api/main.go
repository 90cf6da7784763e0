package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/hourglass/pkg/app"
	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/services/tracking/application/handlers"
	appsvcs "github.com/ghuser/hourglass/services/tracking/application/services"
)

// TrackingRoutes registers tracking endpoints on the provided chi router.
// Login and user registration are public; everything else requires a session
// cookie or a bearer token.
func TrackingRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	h := handlers.New(svcs, a.SessionStore, a.Logger, a.Metrics)

	r.Group(func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/users", h.CreateUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Tokens, a.Logger))

		r.Post("/auth/logout", h.Logout)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Put("/", h.UpdateProject)
				r.Delete("/", h.DeleteProject)

				r.Get("/tasks", h.ListTasks)
				r.Post("/tasks", h.CreateTask)

				r.Get("/users", h.ListMembers)
				r.Post("/users", h.AddMember)
				r.Put("/users/{projectUserID}", h.UpdateMember)
				r.Delete("/users/{projectUserID}", h.RemoveMember)
			})
		})

		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Put("/", h.UpdateTask)
			r.Delete("/", h.DeleteTask)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Post("/", h.CreateTimeEntry)
			r.Put("/{id}", h.UpdateTimeEntry)
			r.Delete("/{id}", h.DeleteTimeEntry)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", h.ListRoles)
			r.Post("/", h.CreateRole)
			r.Put("/{id}", h.UpdateRole)
			r.Delete("/{id}", h.DeleteRole)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)

			r.Post("/roles/{roleID}", h.AssignRole)
			r.Delete("/roles/{roleID}", h.UnassignRole)

			r.Get("/tasks", h.ListUserTasks)
			r.Post("/tasks/{taskID}", h.AssignTask)
			r.Delete("/tasks/{taskID}", h.UnassignTask)

			r.Get("/time-entries", h.ListUserTimeEntries)
		})
	})
}
