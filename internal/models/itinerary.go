package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Itinerary is a dated trip plan with an ordered list of attractions.
type Itinerary struct {
	ID            int64           `json:"_id"`
	Name          string          `json:"name"`
	From          Date            `json:"from"`
	To            Date            `json:"to"`
	OwnerID       int64           `json:"userId"`
	IsPublic      bool            `json:"isPublic"`
	ShareID       string          `json:"shareId"`
	Attractions   []EnrichedPlace `json:"attractions"`
	Collaborators []UserRef       `json:"collaborators"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// HideCollaboratorEmails clears collaborator emails before the itinerary is
// shown to someone who is not a member.
func (it *Itinerary) HideCollaboratorEmails() {
	for i := range it.Collaborators {
		it.Collaborators[i].Email = ""
	}
}

// ItineraryInput carries the editable itinerary fields.
type ItineraryInput struct {
	Name     string `json:"name"`
	From     Date   `json:"from"`
	To       Date   `json:"to"`
	IsPublic bool   `json:"isPublic"`
}

const dateLayout = "2006-01-02"

// Date is a calendar day. It decodes from either YYYY-MM-DD or RFC 3339 and
// always encodes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(raw string) (Date, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", raw)
	}
	return NewDate(t), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
