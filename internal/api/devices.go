package api

import (
	"net/http"

	"github.com/nerrad567/pulselink-core/internal/device"
	"github.com/nerrad567/pulselink-core/internal/events"
)

type createDeviceRequest struct {
	SubscriberID int64   `json:"subscriber_id"`
	MacID        string  `json:"mac_id"`
	ModelName    *string `json:"model_name"`
}

type updateDeviceRequest struct {
	SubscriberID *int64  `json:"subscriber_id"`
	MacID        *string `json:"mac_id"`
	ModelName    *string `json:"model_name"`
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.devices.List(r.Context(), pageFrom(r))
	if err != nil {
		s.writeDomainError(w, r, "list devices", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(devices))
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	d, err := s.devices.GetByID(r.Context(), id)
	s.respondDevice(w, r, d, err)
}

// handleGetDeviceByMac returns the oldest device with the given mac_id.
func (s *Server) handleGetDeviceByMac(w http.ResponseWriter, r *http.Request) {
	mac, err := pathValue(r, "mac")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	d, err := s.devices.GetByMac(r.Context(), mac)
	s.respondDevice(w, r, d, err)
}

func (s *Server) respondDevice(w http.ResponseWriter, r *http.Request, d *device.Device, err error) {
	if err != nil {
		s.writeDomainError(w, r, "get device", err)
		return
	}
	if d == nil {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := s.devices.Create(r.Context(), device.NewDevice(req))
	if err != nil {
		s.writeDomainError(w, r, "create device", err)
		return
	}

	s.events.Created(events.EntityDevice, d.ID)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateDeviceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.devices.Update(r.Context(), id, device.Patch(req))
	if err != nil {
		s.writeDomainError(w, r, "update device", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "device not found")
		return
	}

	s.events.Updated(events.EntityDevice, id)
	d, err := s.devices.GetByID(r.Context(), id)
	s.respondDevice(w, r, d, err)
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.devices.Delete(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "delete device", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "device not found")
		return
	}

	s.events.Deleted(events.EntityDevice, id)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
