package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tasktracker/internal/service"
)

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !strings.Contains(req.Email, "@") {
		respondWithError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		respondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := s.auth.Register(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to register user")
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

func (s *Server) verifyHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "Verification token is required")
		return
	}

	if err := s.auth.Verify(r.Context(), token); err != nil {
		s.respondServiceError(w, err, "Failed to verify email")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to authenticate")
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}

	if err := s.auth.DeleteUser(r.Context(), targetID, userIDFrom(r.Context())); err != nil {
		s.respondServiceError(w, err, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
