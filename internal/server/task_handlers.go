package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"
)

const maxAttachmentBytes = 32 << 20

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title cannot be empty")
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	task, err := s.tasks.Create(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to create task")
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

// listTasksHandler parses the optional equality filters. The owner
// scope comes from the token, never from the query.
func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	var filter repository.TaskFilter

	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.TaskStatus(v)
		if !status.Valid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		priority := domain.TaskPriority(v)
		if !priority.Valid() {
			respondWithError(w, http.StatusBadRequest, "Invalid priority filter")
			return
		}
		filter.Priority = &priority
	}
	if v := r.URL.Query().Get("task_list_id"); v != "" {
		listID, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid task_list_id filter")
			return
		}
		filter.TaskListID = &listID
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid offset")
			return
		}
		offset = n
	}

	tasks, err := s.tasks.List(r.Context(), userIDFrom(r.Context()), filter, limit, offset)
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve tasks")
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	task, err := s.tasks.Get(r.Context(), taskID, userIDFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve task")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	var req service.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title != nil && *req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title cannot be empty")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	task, err := s.tasks.Update(r.Context(), taskID, userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to update task")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	if err := s.tasks.Delete(r.Context(), taskID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAttachmentBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "A multipart 'file' field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	task, err := s.tasks.AddAttachment(r.Context(), taskID, userIDFrom(r.Context()), content, header.Filename, contentType)
	if err != nil {
		s.respondServiceError(w, err, "Failed to upload attachment")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) removeAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := uuid.Parse(chi.URLParam(r, "attachmentID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid attachment ID provided")
		return
	}

	if err := s.tasks.RemoveAttachment(r.Context(), attachmentID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to remove attachment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
