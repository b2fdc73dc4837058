package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the full route tree.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.registerHandler)
			r.Get("/verify", s.verifyHandler)
			r.Post("/token", s.loginHandler)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Delete("/users/{userID}", s.deleteUserHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", s.createTaskHandler)
				r.Get("/", s.listTasksHandler)
				r.Delete("/attachments/{attachmentID}", s.removeAttachmentHandler)
				r.Get("/{taskID}", s.getTaskHandler)
				r.Put("/{taskID}", s.updateTaskHandler)
				r.Delete("/{taskID}", s.deleteTaskHandler)
				r.Post("/{taskID}/attachments", s.addAttachmentHandler)
				r.Post("/{taskID}/checklists", s.createChecklistHandler)
			})

			r.Route("/task-lists", func(r chi.Router) {
				r.Post("/", s.createTaskListHandler)
				r.Get("/", s.listTaskListsHandler)
				r.Get("/{taskListID}", s.getTaskListHandler)
				r.Put("/{taskListID}", s.updateTaskListHandler)
				r.Delete("/{taskListID}", s.deleteTaskListHandler)
			})

			r.Route("/checklists", func(r chi.Router) {
				r.Get("/{checklistID}", s.getChecklistHandler)
				r.Delete("/{checklistID}", s.deleteChecklistHandler)
				r.Post("/{checklistID}/items", s.addChecklistItemHandler)
			})

			r.Route("/checklist-items", func(r chi.Router) {
				r.Put("/{itemID}", s.updateChecklistItemHandler)
				r.Delete("/{itemID}", s.deleteChecklistItemHandler)
			})
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
