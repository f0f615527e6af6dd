package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"easyexplore/internal/app"
	"easyexplore/internal/app/users"
	"easyexplore/internal/logging"
	"easyexplore/internal/models"
	"easyexplore/internal/searchservice"
	"easyexplore/internal/store"
)

// SearchService runs the attraction search pipeline.
type SearchService interface {
	Search(ctx context.Context, q searchservice.Query) ([]models.EnrichedPlace, error)
}

// SuggestService completes partial place names near a point.
type SuggestService interface {
	Suggest(ctx context.Context, query string, lat, lon float64) ([]models.Suggestion, error)
}

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
	PublicProfile(ctx context.Context, userName string) (*models.PublicProfile, error)
}

// SavedService exposes bookmarked attractions and favorite names.
type SavedService interface {
	Save(ctx context.Context, userID int64, place models.EnrichedPlace) (*models.SavedAttraction, error)
	List(ctx context.Context, userID int64) ([]*models.SavedAttraction, error)
	Delete(ctx context.Context, userID int64, attractionID string) error
	AddFavorite(ctx context.Context, userID int64, name string) (string, error)
	Favorites(ctx context.Context, userID int64) ([]string, error)
}

// ItineraryService coordinates trip planning.
type ItineraryService interface {
	List(ctx context.Context, userID int64) ([]*models.Itinerary, error)
	Create(ctx context.Context, userID int64, in models.ItineraryInput) (*models.Itinerary, error)
	Get(ctx context.Context, userID, id int64) (*models.Itinerary, error)
	Update(ctx context.Context, userID, id int64, in models.ItineraryInput) (*models.Itinerary, error)
	Delete(ctx context.Context, userID, id int64) error
	AddAttraction(ctx context.Context, userID, id int64, place models.EnrichedPlace) (*models.Itinerary, error)
	RemoveAttraction(ctx context.Context, userID, id int64, attractionID string) (*models.Itinerary, error)
	AddCollaborator(ctx context.Context, userID, id int64, email string) (*models.Itinerary, error)
	RemoveCollaborator(ctx context.Context, userID, id, collaboratorID int64) (*models.Itinerary, error)
	Shared(ctx context.Context, shareID string) (*models.Itinerary, error)
}

// ReviewService exposes attraction reviews.
type ReviewService interface {
	Create(ctx context.Context, userID int64, attractionID string, rating int, comment string) (*models.Review, error)
	ForAttraction(ctx context.Context, attractionID string) ([]*models.Review, error)
	Update(ctx context.Context, userID, id int64, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, userID, id int64) error
	ByUser(ctx context.Context, userName string, page, limit int) (*models.ReviewPage, error)
	Mine(ctx context.Context, userID int64, page, limit int) (*models.ReviewPage, error)
}

// TokenVerifier maps an access token to the user it was issued for.
type TokenVerifier interface {
	UserID(token string) (int64, error)
}

// Services groups the dependencies of a Server.
type Services struct {
	Search      SearchService
	Suggest     SuggestService
	Users       UserService
	Saved       SavedService
	Itineraries ItineraryService
	Reviews     ReviewService
	Tokens      TokenVerifier
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	search      SearchService
	suggest     SuggestService
	users       UserService
	saved       SavedService
	itineraries ItineraryService
	reviews     ReviewService
	tokens      TokenVerifier
}

// New configures a Server with the given services.
func New(svc Services) *Server {
	return &Server{
		search:      svc.Search,
		suggest:     svc.Suggest,
		users:       svc.Users,
		saved:       svc.Saved,
		itineraries: svc.Itineraries,
		reviews:     svc.Reviews,
		tokens:      svc.Tokens,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)

	api.HandleFunc("/user/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/user/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/user/profile", s.authenticated(s.handleProfile)).Methods(http.MethodGet)
	api.HandleFunc("/user/profile", s.authenticated(s.handleUpdateProfile)).Methods(http.MethodPut)
	api.HandleFunc("/user/profile/username/{username}", s.handlePublicProfile).Methods(http.MethodGet)
	api.HandleFunc("/user/reviews", s.authenticated(s.handleMyReviews)).Methods(http.MethodGet)
	api.HandleFunc("/user/{username}/reviews", s.handleUserReviews).Methods(http.MethodGet)

	api.HandleFunc("/saved-attractions", s.authenticated(s.handleSaveAttraction)).Methods(http.MethodPost)
	api.HandleFunc("/saved-attractions", s.authenticated(s.handleListSaved)).Methods(http.MethodGet)
	api.HandleFunc("/saved-attractions/{attractionId}", s.authenticated(s.handleDeleteSaved)).Methods(http.MethodDelete)
	api.HandleFunc("/favorites", s.authenticated(s.handleAddFavorite)).Methods(http.MethodPost)
	api.HandleFunc("/favorites", s.authenticated(s.handleListFavorites)).Methods(http.MethodGet)

	api.HandleFunc("/itineraries", s.authenticated(s.handleListItineraries)).Methods(http.MethodGet)
	api.HandleFunc("/itineraries", s.authenticated(s.handleCreateItinerary)).Methods(http.MethodPost)
	api.HandleFunc("/itineraries/shared/{shareId}", s.handleSharedItinerary).Methods(http.MethodGet)
	api.HandleFunc("/itineraries/{id:[0-9]+}", s.authenticated(s.handleGetItinerary)).Methods(http.MethodGet)
	api.HandleFunc("/itineraries/{id:[0-9]+}", s.authenticated(s.handleUpdateItinerary)).Methods(http.MethodPut)
	api.HandleFunc("/itineraries/{id:[0-9]+}", s.authenticated(s.handleDeleteItinerary)).Methods(http.MethodDelete)
	api.HandleFunc("/itineraries/{id:[0-9]+}/attractions", s.authenticated(s.handleAddItineraryAttraction)).Methods(http.MethodPost)
	api.HandleFunc("/itineraries/{id:[0-9]+}/attractions/{attractionId}", s.authenticated(s.handleRemoveItineraryAttraction)).Methods(http.MethodDelete)
	api.HandleFunc("/itineraries/{id:[0-9]+}/collaborators", s.authenticated(s.handleAddCollaborator)).Methods(http.MethodPost)
	api.HandleFunc("/itineraries/{id:[0-9]+}/collaborators/{userId:[0-9]+}", s.authenticated(s.handleRemoveCollaborator)).Methods(http.MethodDelete)

	api.HandleFunc("/reviews", s.authenticated(s.handleCreateReview)).Methods(http.MethodPost)
	api.HandleFunc("/reviews/{attractionId}", s.handleAttractionReviews).Methods(http.MethodGet)
	api.HandleFunc("/reviews/{id:[0-9]+}", s.authenticated(s.handleUpdateReview)).Methods(http.MethodPut)
	api.HandleFunc("/reviews/{id:[0-9]+}", s.authenticated(s.handleDeleteReview)).Methods(http.MethodDelete)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// authedHandler is a handler that runs for a verified user.
type authedHandler func(w http.ResponseWriter, r *http.Request, userID int64)

// authenticated resolves the bearer token to a user id before calling next.
func (s *Server) authenticated(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		userID, err := s.tokens.UserID(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		next(w, r.WithContext(logging.WithUserID(r.Context(), userID)), userID)
	}
}

// writeError maps service and store errors onto HTTP statuses. Errors that
// match nothing are logged and reported as fallback.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validation *app.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Message})
	case errors.Is(err, app.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have access to this resource"})
	case errors.Is(err, users.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrUserExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "a user with that email or username already exists"})
	case errors.Is(err, store.ErrAlreadySaved):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Already saved"})
	case errors.Is(err, store.ErrAttractionExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Attraction has already been added to your itinerary!"})
	case errors.Is(err, store.ErrCollaboratorExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "user is already a collaborator"})
	case errors.Is(err, store.ErrReviewExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "you have already reviewed this attraction"})
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrSavedNotFound),
		errors.Is(err, store.ErrItineraryNotFound),
		errors.Is(err, store.ErrAttractionNotFound),
		errors.Is(err, store.ErrCollaboratorNotFound),
		errors.Is(err, store.ErrReviewNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// parseBearerToken accepts both "Bearer <token>" and "JWT <token>".
func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "JWT") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
