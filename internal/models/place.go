package models

import "time"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// EnrichedPlace is an attraction returned by search. The same shape is stored
// for saved attractions and itinerary stops.
type EnrichedPlace struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Address      *string  `json:"address"`
	Kinds        []string `json:"kinds"`
	Rating       *float64 `json:"rating"`
	Image        *string  `json:"image"`
	Description  *string  `json:"description"`
	URL          *string  `json:"url"`
	Phone        *string  `json:"phone"`
	OpeningHours *string  `json:"opening_hours"`

	PriorityMatch int `json:"priorityMatch"`
}

// Coordinate returns the place location.
func (p EnrichedPlace) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// SavedAttraction is an EnrichedPlace bookmarked by a user.
type SavedAttraction struct {
	EnrichedPlace
	SavedAt time.Time `json:"savedAt"`
}

// Suggestion is an autocomplete hit for a place name.
type Suggestion struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Kinds []string `json:"kinds"`
}
