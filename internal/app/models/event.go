package models

import "time"

// Event represents a scheduled, dated activity with optional capacity.
// Participants is a cached sum of registration member counts; the
// registration set is the source of truth and the cache is recomputed
// after every registration mutation.
type Event struct {
	ID           int64       `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Location     string      `json:"location" db:"location"`
	Date         time.Time   `json:"date" db:"date"`
	Type         string      `json:"type" db:"type"`
	ImageURL     string      `json:"imageUrl" db:"image_url"`
	Description  string      `json:"description" db:"description"`
	Status       EventStatus `json:"status" db:"status"`
	Capacity     int         `json:"capacity" db:"capacity"`
	Participants int         `json:"participants" db:"participants"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`

	// Gallery is the ordered list of media URLs attached to the event.
	Gallery []string `json:"gallery,omitempty"`
}

// IsActive reports whether the event is open for registration.
func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}

// IsPast reports whether the event's date is strictly before the given day.
// The comparison is date-only; time of day is ignored.
func (e *Event) IsPast(today time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := today.Date()
	eventDay := time.Date(y1, m1, d1, 0, 0, 0, 0, time.Local)
	currentDay := time.Date(y2, m2, d2, 0, 0, 0, 0, time.Local)
	return eventDay.Before(currentDay)
}
