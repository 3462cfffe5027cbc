package api

import (
	"net/http"

	"github.com/nerrad567/pulselink-core/internal/auth"
	"github.com/nerrad567/pulselink-core/internal/events"
	"github.com/nerrad567/pulselink-core/internal/user"
)

// createUserRequest is the body for POST /users. The plaintext password
// is hashed before it reaches the repository; an empty one stores no
// credential.
type createUserRequest struct {
	SubscriberID int64  `json:"subscriber_id"`
	Email        string `json:"email"`
	RoleID       int64  `json:"role_id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// updateUserRequest is the body for PUT /users/{id}.
type updateUserRequest struct {
	SubscriberID *int64  `json:"subscriber_id"`
	Email        *string `json:"email"`
	RoleID       *int64  `json:"role_id"`
	Username     *string `json:"username"`
	Password     *string `json:"password"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context(), pageFrom(r))
	if err != nil {
		s.writeDomainError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(users))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	s.writeUser(w, r, id)
}

func (s *Server) writeUser(w http.ResponseWriter, r *http.Request, id int64) {
	u, err := s.users.GetByID(r.Context(), id)
	s.respondUser(w, r, u, err)
}

func (s *Server) handleGetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := pathValue(r, "username")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	u, err := s.users.GetByUsername(r.Context(), username)
	s.respondUser(w, r, u, err)
}

func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := pathValue(r, "email")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	u, err := s.users.GetByEmail(r.Context(), email)
	s.respondUser(w, r, u, err)
}

func (s *Server) respondUser(w http.ResponseWriter, r *http.Request, u *user.User, err error) {
	if err != nil {
		s.writeDomainError(w, r, "get user", err)
		return
	}
	if u == nil {
		writeNotFound(w, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := user.NewUser{
		SubscriberID: req.SubscriberID,
		Email:        req.Email,
		RoleID:       req.RoleID,
		Username:     req.Username,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.writeDomainError(w, r, "hash password", err)
			return
		}
		in.PasswordHash = hash
	}

	u, err := s.users.Create(r.Context(), in)
	if err != nil {
		s.writeDomainError(w, r, "create user", err)
		return
	}

	s.events.Created(events.EntityUser, u.ID)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := user.Patch{
		SubscriberID: req.SubscriberID,
		Email:        req.Email,
		RoleID:       req.RoleID,
		Username:     req.Username,
	}
	if req.Password != nil {
		if *req.Password == "" {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "password must not be empty")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.writeDomainError(w, r, "hash password", err)
			return
		}
		p.PasswordHash = &hash
	}

	res, err := s.users.Update(r.Context(), id, p)
	if err != nil {
		s.writeDomainError(w, r, "update user", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "user not found")
		return
	}

	s.events.Updated(events.EntityUser, id)
	s.writeUser(w, r, id)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.users.Delete(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "delete user", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "user not found")
		return
	}

	s.events.Deleted(events.EntityUser, id)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
