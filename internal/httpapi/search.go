package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"easyexplore/internal/logging"
	"easyexplore/internal/searchservice"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No valid location provided"})
		return
	}

	places, err := s.search.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, searchservice.ErrInvalidRequest):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No valid location provided"})
		case errors.Is(err, searchservice.ErrLocationNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Location not found"})
		default:
			logging.FromContext(r.Context()).Error().Err(err).Msg("attraction search failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Search failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, places)
}

// parseSearchQuery reads the search parameters. category takes precedence
// over poiType and a malformed radius is ignored; malformed coordinates are
// an error.
func parseSearchQuery(r *http.Request) (searchservice.Query, error) {
	params := r.URL.Query()

	q := searchservice.Query{
		FreeText: strings.TrimSpace(params.Get("query")),
		City:     strings.TrimSpace(params.Get("city")),
		State:    strings.TrimSpace(params.Get("state")),
		Country:  strings.TrimSpace(params.Get("country")),
		Category: strings.TrimSpace(params.Get("category")),
	}
	if q.Category == "" {
		q.Category = strings.TrimSpace(params.Get("poiType"))
	}
	if radius, err := strconv.Atoi(params.Get("radius")); err == nil && radius > 0 {
		q.RadiusMeters = radius
	}

	var err error
	if q.Lat, err = optionalFloat(params.Get("lat")); err != nil {
		return q, err
	}
	if q.Lon, err = optionalFloat(params.Get("lon")); err != nil {
		return q, err
	}
	return q, nil
}

func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := strings.TrimSpace(params.Get("query"))
	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(params.Get("lon"), 64)
	if query == "" || latErr != nil || lonErr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing query or coordinates"})
		return
	}

	suggestions, err := s.suggest.Suggest(r.Context(), query, lat, lon)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Str("query", query).Msg("autosuggest failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch suggestions"})
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}
