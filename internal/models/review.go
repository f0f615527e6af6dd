package models

import "time"

// Review is a user's rating of an attraction.
type Review struct {
	ID           int64     `json:"_id"`
	AttractionID string    `json:"attractionId"`
	User         UserRef   `json:"userId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewPage is one page of a user's reviews.
type ReviewPage struct {
	Reviews    []*Review `json:"reviews"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}
