package dto

// DateLayout is the wire format for event dates (date only, no time).
const DateLayout = "2006-01-02"

// CreateEventRequest is the admin payload for creating an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required" example:"Community Food Drive"`
	Location    string `json:"location" example:"City Hall Grounds"`
	Date        string `json:"date" binding:"required" example:"2025-11-02"`
	Type        string `json:"type" example:"Social"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"min=0" example:"100"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateEventRequest is the admin payload for updating an event
type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Location    string `json:"location"`
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"min=0"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateEventStatusRequest toggles an event's status manually
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Inactive"`
}

// JoinEventRequest is the payload for joining an event
type JoinEventRequest struct {
	Members int `json:"members" example:"2"`
}

// SetReminderRequest sets the reminder lead time for a registration
type SetReminderRequest struct {
	HoursBefore *int `json:"hoursBefore" binding:"omitempty,min=1,max=168" example:"24"`
}

// GalleryImageRequest carries a single gallery media URL
type GalleryImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// GalleryImage is a single gallery entry in responses
type GalleryImage struct {
	URL string `json:"url"`
}

// EventResponse is the public representation of an event
type EventResponse struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Location     string         `json:"location"`
	Date         string         `json:"date" example:"2025-11-02"`
	Type         string         `json:"type"`
	ImageURL     string         `json:"imageUrl"`
	Description  string         `json:"description"`
	Status       string         `json:"status" enums:"Active,Inactive"`
	Capacity     int            `json:"capacity"`
	Participants int            `json:"participants"`
	Gallery      []GalleryImage `json:"gallery"`
}

// RegistrantResponse is the admin view of a single registration
type RegistrantResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Phone     string `json:"phone"`
	Members   int    `json:"members"`
}

// UserEventResponse is one entry of a user's joined-events listing
type UserEventResponse struct {
	EventID       int64          `json:"eventId"`
	Title         string         `json:"title"`
	Date          string         `json:"date"`
	Location      string         `json:"location"`
	Members       int            `json:"members"`
	Status        string         `json:"status"`
	ImageURL      string         `json:"imageUrl"`
	ReminderHours *int           `json:"reminderHours,omitempty"`
	Gallery       []GalleryImage `json:"gallery"`
}
