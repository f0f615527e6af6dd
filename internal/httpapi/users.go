package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"easyexplore/internal/app/users"
	"easyexplore/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterInput
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.users.Register(r.Context(), req); err != nil {
		writeError(w, r, err, "failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User registered successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token, User: user})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	var update models.ProfileUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeError(w, r, err, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.PublicProfile(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
