package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"easyexplore/internal/models"
)

func (s *Server) handleListItineraries(w http.ResponseWriter, r *http.Request, userID int64) {
	list, err := s.itineraries.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to load itineraries")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request, userID int64) {
	var in models.ItineraryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	it, err := s.itineraries.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err, "failed to create itinerary")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	it, err := s.itineraries.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err, "failed to load itinerary")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleUpdateItinerary(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.ItineraryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	it, err := s.itineraries.Update(r.Context(), userID, id, in)
	if err != nil {
		writeError(w, r, err, "failed to update itinerary")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err, "failed to delete itinerary")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddItineraryAttraction(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var place models.EnrichedPlace
	if !decodeJSON(w, r, &place) {
		return
	}

	it, err := s.itineraries.AddAttraction(r.Context(), userID, id, place)
	if err != nil {
		writeError(w, r, err, "failed to add attraction")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleRemoveItineraryAttraction(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	it, err := s.itineraries.RemoveAttraction(r.Context(), userID, id, mux.Vars(r)["attractionId"])
	if err != nil {
		writeError(w, r, err, "failed to remove attraction")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleAddCollaborator(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		CollaboratorEmail string `json:"collaboratorEmail"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	it, err := s.itineraries.AddCollaborator(r.Context(), userID, id, req.CollaboratorEmail)
	if err != nil {
		writeError(w, r, err, "failed to add collaborator")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	collaboratorID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	it, err := s.itineraries.RemoveCollaborator(r.Context(), userID, id, collaboratorID)
	if err != nil {
		writeError(w, r, err, "failed to remove collaborator")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleSharedItinerary(w http.ResponseWriter, r *http.Request) {
	it, err := s.itineraries.Shared(r.Context(), mux.Vars(r)["shareId"])
	if err != nil {
		writeError(w, r, err, "failed to load itinerary")
		return
	}
	writeJSON(w, http.StatusOK, it)
}
