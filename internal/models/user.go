package models

import "time"

// User is an account holder.
type User struct {
	ID              int64           `json:"_id"`
	UserName        string          `json:"userName"`
	Email           string          `json:"email"`
	Bio             string          `json:"bio"`
	ProfilePicture  string          `json:"profilePicture"`
	CurrentLocation CurrentLocation `json:"currentLocation"`
	VisitedCities   []VisitedCity   `json:"visitedCities"`
	IsPublic        bool            `json:"isPublic"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CurrentLocation is where a user says they live.
type CurrentLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// VisitedCity is an entry on a user's travel map.
type VisitedCity struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	City        string `json:"city"`
}

// ProfileUpdate holds the fields a user may change on their profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Bio             *string          `json:"bio,omitempty"`
	ProfilePicture  *string          `json:"profilePicture,omitempty"`
	CurrentLocation *CurrentLocation `json:"currentLocation,omitempty"`
	VisitedCities   []VisitedCity    `json:"visitedCities,omitempty"`
	IsPublic        *bool            `json:"isPublic,omitempty"`
}

// UserRef is the compact author form embedded in reviews and collaborator lists.
type UserRef struct {
	ID       int64  `json:"_id"`
	UserName string `json:"userName"`
	Email    string `json:"email,omitempty"`
}

// PublicProfile bundles a user with their public itineraries.
type PublicProfile struct {
	User        User         `json:"user"`
	Itineraries []*Itinerary `json:"itineraries"`
}
