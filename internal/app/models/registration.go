package models

import "time"

// Registration represents a user's commitment to attend an event with a
// member count. At most one registration exists per (event, user) pair.
type Registration struct {
	ID      int64 `json:"id" db:"id"`
	EventID int64 `json:"eventId" db:"event_id"`
	UserID  int64 `json:"userId" db:"user_id"`
	Members int   `json:"members" db:"members"`

	// ReminderHours is the lead time in hours before the event's anchor
	// instant at which a one-time reminder should be sent. Nil means the
	// registrant opted out of reminders.
	ReminderHours *int `json:"reminderHours,omitempty" db:"reminder_hours"`

	// ReminderSentAt records the one-shot reminder delivery. Once set the
	// scheduler never considers this registration again.
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty" db:"reminder_sent_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Event *Event `json:"event,omitempty"`
	User  *User  `json:"user,omitempty"`
}
