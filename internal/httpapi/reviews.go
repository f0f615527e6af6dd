package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type reviewRequest struct {
	AttractionID string `json:"attractionId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request, userID int64) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := s.reviews.Create(r.Context(), userID, req.AttractionID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, err, "failed to create review")
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleAttractionReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ForAttraction(r.Context(), mux.Vars(r)["attractionId"])
	if err != nil {
		writeError(w, r, err, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := s.reviews.Update(r.Context(), userID, id, req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, err, "failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.reviews.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err, "failed to delete review")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Review deleted"})
}

func (s *Server) handleUserReviews(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := s.reviews.ByUser(r.Context(), mux.Vars(r)["username"], page, limit)
	if err != nil {
		writeError(w, r, err, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMyReviews(w http.ResponseWriter, r *http.Request, userID int64) {
	page, limit := pageParams(r)
	result, err := s.reviews.Mine(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, r, err, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// pageParams reads page and limit; unparsable values fall back to the defaults.
func pageParams(r *http.Request) (page, limit int) {
	params := r.URL.Query()
	page, _ = strconv.Atoi(params.Get("page"))
	limit, _ = strconv.Atoi(params.Get("limit"))
	return page, limit
}
