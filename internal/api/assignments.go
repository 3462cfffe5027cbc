package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nerrad567/pulselink-core/internal/assignment"
	"github.com/nerrad567/pulselink-core/internal/events"
)

type createAssignmentRequest struct {
	UserID     int64      `json:"user_id"`
	DeviceID   int64      `json:"device_id"`
	AssignedAt *time.Time `json:"assigned_at"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

func assignmentKey(userID, deviceID int64) string {
	return strconv.FormatInt(userID, 10) + "/" + strconv.FormatInt(deviceID, 10)
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	list, err := s.assignments.List(r.Context(), pageFrom(r))
	if err != nil {
		s.writeDomainError(w, r, "list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(list))
}

// handleListAssignmentsByUser returns the devices assigned to a user.
func (s *Server) handleListAssignmentsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	links, err := s.assignments.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, "list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(links))
}

// handleListAssignmentsByDevice returns the users a device is assigned to.
func (s *Server) handleListAssignmentsByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceId")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	links, err := s.assignments.ListByDevice(r.Context(), deviceID)
	if err != nil {
		s.writeDomainError(w, r, "list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(links))
}

func (s *Server) handleAssignmentExists(w http.ResponseWriter, r *http.Request) {
	userID, deviceID, ok := assignmentPath(w, r)
	if !ok {
		return
	}

	exists, err := s.assignments.Exists(r.Context(), userID, deviceID)
	if err != nil {
		s.writeDomainError(w, r, "check assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := s.assignments.Create(r.Context(), assignment.NewAssignment(req))
	if err != nil {
		s.writeDomainError(w, r, "create assignment", err)
		return
	}

	s.events.Notify(events.Change{
		Entity: events.EntityAssignment,
		Action: events.ActionCreated,
		Key:    assignmentKey(a.UserID, a.DeviceID),
	})
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	userID, deviceID, ok := assignmentPath(w, r)
	if !ok {
		return
	}

	res, err := s.assignments.Delete(r.Context(), userID, deviceID)
	if err != nil {
		s.writeDomainError(w, r, "delete assignment", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "assignment not found")
		return
	}

	s.events.Notify(events.Change{
		Entity: events.EntityAssignment,
		Action: events.ActionDeleted,
		Key:    assignmentKey(userID, deviceID),
	})
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func assignmentPath(w http.ResponseWriter, r *http.Request) (userID, deviceID int64, ok bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return 0, 0, false
	}
	deviceID, err = pathID(r, "deviceId")
	if err != nil {
		writeBadRequest(w, "invalid device id")
		return 0, 0, false
	}
	return userID, deviceID, true
}
