package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users", h.createUser)
		r.Post("/api/users/login", h.login)
	})

	// routes for the authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/users", h.updateUser)
		r.Delete("/api/users", h.deleteUser)

		r.Route("/api/notes", func(r chi.Router) {
			r.Post("/", h.createNote)
			r.Get("/", h.getNotes)
			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})

		r.Get("/api/tags/{name}/notes", h.getNotesByTag)
	})

	// administrative routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)

		r.Get("/api/users", h.getUsers)
	})

	return router
}
