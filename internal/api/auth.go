package api

import (
	"net/http"

	"github.com/nerrad567/pulselink-core/internal/auth"
	"github.com/nerrad567/pulselink-core/internal/events"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerResponse is the response body for POST /auth/register.
type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// handleRegister creates a user with a hashed password.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.Registration
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password required")
		return
	}

	u, err := s.auth.Register(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, "register", err)
		return
	}

	s.logger.Info("user registered", "user_id", u.ID)
	s.events.Created(events.EntityUser, u.ID)
	writeJSON(w, http.StatusCreated, registerResponse{ID: u.ID, Username: u.Username})
}

// handleLogin verifies credentials and returns a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password required")
		return
	}

	tok, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeDomainError(w, r, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, tok)
}

// handleProtected greets the token holder.
func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	sub := subjectFrom(r.Context())
	if sub == nil {
		writeUnauthorized(w, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello " + sub.Username + ", you have accessed a protected route.",
	})
}
