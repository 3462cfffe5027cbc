package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/pulselink-core/internal/events"
	"github.com/nerrad567/pulselink-core/internal/geo"
	"github.com/nerrad567/pulselink-core/internal/subscriber"
)

// createSubscriberRequest is the body for POST /subscribers.
// geo_location is {"lat":..,"lng":..}; anything else stores no point.
type createSubscriberRequest struct {
	Name        string          `json:"name"`
	PlanType    subscriber.Plan `json:"plan_type"`
	Address     string          `json:"address"`
	PhoneNumber string          `json:"phone_number"`
	GeoLocation json.RawMessage `json:"geo_location"`
}

// updateSubscriberRequest is the body for PUT /subscribers/{id}.
// An absent geo_location is left unchanged; null or an unusable value
// clears it.
type updateSubscriberRequest struct {
	Name        *string          `json:"name"`
	PlanType    *subscriber.Plan `json:"plan_type"`
	Address     *string          `json:"address"`
	PhoneNumber *string          `json:"phone_number"`
	GeoLocation json.RawMessage  `json:"geo_location"`
}

func (req updateSubscriberRequest) patch() subscriber.Patch {
	p := subscriber.Patch{
		Name:        req.Name,
		PlanType:    req.PlanType,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if len(req.GeoLocation) > 0 {
		if pt := geo.FromJSON(req.GeoLocation); pt != nil {
			p.GeoLocation = pt
		} else {
			p.ClearGeoLocation = true
		}
	}
	return p
}

func (s *Server) handleListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := s.subscribers.List(r.Context(), pageFrom(r))
	if err != nil {
		s.writeDomainError(w, r, "list subscribers", err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(subs))
}

func (s *Server) handleGetSubscriber(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	s.writeSubscriber(w, r, id)
}

func (s *Server) writeSubscriber(w http.ResponseWriter, r *http.Request, id int64) {
	sub, err := s.subscribers.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "get subscriber", err)
		return
	}
	if sub == nil {
		writeNotFound(w, "subscriber not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleGetSubscriberByPhone(w http.ResponseWriter, r *http.Request) {
	phone, err := pathValue(r, "phone")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sub, err := s.subscribers.GetByPhone(r.Context(), phone)
	if err != nil {
		s.writeDomainError(w, r, "get subscriber", err)
		return
	}
	if sub == nil {
		writeNotFound(w, "subscriber not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleCreateSubscriber(w http.ResponseWriter, r *http.Request) {
	var req createSubscriberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := s.subscribers.Create(r.Context(), subscriber.NewSubscriber{
		Name:        req.Name,
		PlanType:    req.PlanType,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		GeoLocation: geo.FromJSON(req.GeoLocation),
	})
	if err != nil {
		s.writeDomainError(w, r, "create subscriber", err)
		return
	}

	s.events.Created(events.EntitySubscriber, sub.ID)
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubscriber(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateSubscriberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.subscribers.Update(r.Context(), id, req.patch())
	if err != nil {
		s.writeDomainError(w, r, "update subscriber", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "subscriber not found")
		return
	}

	s.events.Updated(events.EntitySubscriber, id)
	s.writeSubscriber(w, r, id)
}

func (s *Server) handleDeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.subscribers.Delete(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, "delete subscriber", err)
		return
	}
	if !res.Found() {
		writeNotFound(w, "subscriber not found")
		return
	}

	s.events.Deleted(events.EntitySubscriber, id)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
