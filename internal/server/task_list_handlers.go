package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tasktracker/internal/service"
)

func (s *Server) createTaskListHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	list, err := s.taskLists.Create(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to create task list")
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) listTaskListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := s.taskLists.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve task lists")
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}

func (s *Server) getTaskListHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(chi.URLParam(r, "taskListID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task list ID provided")
		return
	}

	list, err := s.taskLists.Get(r.Context(), listID, userIDFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve task list")
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) updateTaskListHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(chi.URLParam(r, "taskListID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task list ID provided")
		return
	}

	var req service.UpdateTaskListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	list, err := s.taskLists.Update(r.Context(), listID, userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to update task list")
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) deleteTaskListHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(chi.URLParam(r, "taskListID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task list ID provided")
		return
	}

	if err := s.taskLists.Delete(r.Context(), listID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to delete task list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
