package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"easyexplore/internal/app"
	"easyexplore/internal/auth"
	"easyexplore/internal/models"
	"easyexplore/internal/store"
)

// ErrInvalidCredentials indicates a login failure.
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 6

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, userName, email string, passwordHash []byte) (*models.User, error)
	CredentialsByEmail(ctx context.Context, email string) (*models.User, []byte, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, userName string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
	ListPublicItineraries(ctx context.Context, ownerID int64) ([]*models.Itinerary, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, userName, email string) (string, error)
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Service exposes account and profile workflows.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
	PublicProfile(ctx context.Context, userName string) (*models.PublicProfile, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New wires a Service backed by the provided Store and token issuer.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	if in.UserName == "" || in.Email == "" || in.Password == "" || in.Password2 == "" {
		return nil, app.Invalid("userName, email, password and password2 are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, app.Invalid("invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, app.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if in.Password != in.Password2 {
		return nil, app.Invalid("passwords do not match")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return s.store.CreateUser(ctx, in.UserName, in.Email, hash)
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	user, hash, err := s.store.CredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = auth.CheckPassword(nil, password)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := auth.CheckPassword(hash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.UserName, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UserByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if update.CurrentLocation != nil {
		update.CurrentLocation.City = strings.TrimSpace(update.CurrentLocation.City)
		update.CurrentLocation.Country = strings.TrimSpace(update.CurrentLocation.Country)
	}
	if update.VisitedCities != nil {
		cities, err := normaliseVisitedCities(update.VisitedCities)
		if err != nil {
			return nil, err
		}
		update.VisitedCities = cities
	}
	return s.store.UpdateProfile(ctx, userID, update)
}

func (s *service) PublicProfile(ctx context.Context, userName string) (*models.PublicProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByUsername(ctx, userName)
	if err != nil {
		return nil, err
	}
	itineraries, err := s.store.ListPublicItineraries(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.Email = ""
	for _, it := range itineraries {
		it.HideCollaboratorEmails()
	}
	return &models.PublicProfile{User: *user, Itineraries: itineraries}, nil
}

// normaliseVisitedCities trims entries and drops repeats of the same
// (city, country code) pair, keeping the first occurrence.
func normaliseVisitedCities(in []models.VisitedCity) ([]models.VisitedCity, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.VisitedCity, 0, len(in))
	for _, c := range in {
		c.City = strings.TrimSpace(c.City)
		c.CountryCode = strings.ToUpper(strings.TrimSpace(c.CountryCode))
		c.CountryName = strings.TrimSpace(c.CountryName)
		if c.City == "" || c.CountryCode == "" {
			return nil, app.Invalid("visited cities need a city and a countryCode")
		}
		key := strings.ToLower(c.City) + "|" + c.CountryCode
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
