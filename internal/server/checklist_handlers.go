package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tasktracker/internal/service"
)

func (s *Server) createChecklistHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	var req service.CreateChecklistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title cannot be empty")
		return
	}

	checklist, err := s.checklists.CreateChecklist(r.Context(), taskID, userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to create checklist")
		return
	}
	respondWithJSON(w, http.StatusCreated, checklist)
}

func (s *Server) getChecklistHandler(w http.ResponseWriter, r *http.Request) {
	checklistID, err := uuid.Parse(chi.URLParam(r, "checklistID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid checklist ID provided")
		return
	}

	checklist, err := s.checklists.GetChecklist(r.Context(), checklistID, userIDFrom(r.Context()))
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve checklist")
		return
	}
	respondWithJSON(w, http.StatusOK, checklist)
}

func (s *Server) deleteChecklistHandler(w http.ResponseWriter, r *http.Request) {
	checklistID, err := uuid.Parse(chi.URLParam(r, "checklistID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid checklist ID provided")
		return
	}

	if err := s.checklists.DeleteChecklist(r.Context(), checklistID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to delete checklist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	checklistID, err := uuid.Parse(chi.URLParam(r, "checklistID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid checklist ID provided")
		return
	}

	var req service.CreateChecklistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	item, err := s.checklists.AddItem(r.Context(), checklistID, userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to add checklist item")
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) updateChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID provided")
		return
	}

	var req service.UpdateChecklistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content != nil && *req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	item, err := s.checklists.UpdateItem(r.Context(), itemID, userIDFrom(r.Context()), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to update checklist item")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

func (s *Server) deleteChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID provided")
		return
	}

	if err := s.checklists.DeleteItem(r.Context(), itemID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to delete checklist item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
