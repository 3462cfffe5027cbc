package api

import (
	"net/http"

	"github.com/nerrad567/pulselink-core/internal/events"
	"github.com/nerrad567/pulselink-core/internal/role"
)

// handleListRoles returns a page of roles.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.roles.List(r.Context(), pageFrom(r))
	if err != nil {
		s.writeDomainError(w, r, "list roles", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(roles))
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rl, err := s.roles.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "get role", err)
		return
	}
	if rl == nil {
		writeNotFound(w, "role not found")
		return
	}
	writeJSON(w, http.StatusOK, rl)
}

func (s *Server) handleGetRoleByName(w http.ResponseWriter, r *http.Request) {
	name, err := pathValue(r, "name")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	rl, err := s.roles.GetByName(r.Context(), name)
	if err != nil {
		s.writeDomainError(w, r, "get role", err)
		return
	}
	if rl == nil {
		writeNotFound(w, "role not found")
		return
	}
	writeJSON(w, http.StatusOK, rl)
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req role.NewRole
	if !decodeBody(w, r, &req) {
		return
	}

	rl, err := s.roles.Create(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, "create role", err)
		return
	}

	s.events.Created(events.EntityRole, rl.ID)
	writeJSON(w, http.StatusCreated, rl)
}

// handleUpdateRole applies a partial update and returns the stored role.
func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req role.Patch
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.roles.Update(r.Context(), id, req)
	if err != nil {
		s.writeDomainError(w, r, "update role", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "role not found")
		return
	}
	s.events.Updated(events.EntityRole, id)

	rl, err := s.roles.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "get role", err)
		return
	}
	if rl == nil {
		writeNotFound(w, "role not found")
		return
	}
	writeJSON(w, http.StatusOK, rl)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.roles.Delete(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "delete role", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "role not found")
		return
	}

	s.events.Deleted(events.EntityRole, id)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
