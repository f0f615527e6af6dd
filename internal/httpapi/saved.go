package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"easyexplore/internal/models"
	"easyexplore/internal/store"
)

func (s *Server) handleSaveAttraction(w http.ResponseWriter, r *http.Request, userID int64) {
	var place models.EnrichedPlace
	if !decodeJSON(w, r, &place) {
		return
	}

	if _, err := s.saved.Save(r.Context(), userID, place); err != nil {
		writeError(w, r, err, "failed to save attraction")
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Attraction saved"})
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request, userID int64) {
	saved, err := s.saved.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to load saved attractions")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.saved.Delete(r.Context(), userID, mux.Vars(r)["attractionId"]); err != nil {
		writeError(w, r, err, "failed to remove saved attraction")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Attraction removed"})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request, userID int64) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	name, err := s.saved.AddFavorite(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: req.Name + " has already been saved to your favorites."})
			return
		}
		writeError(w, r, err, "failed to add favorite")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: name + " added to your favorites"})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request, userID int64) {
	names, err := s.saved.Favorites(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to load favorites")
		return
	}
	writeJSON(w, http.StatusOK, names)
}
