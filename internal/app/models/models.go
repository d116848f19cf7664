package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// EventStatus defines the lifecycle status of an event
type EventStatus string

const (
	// EventStatusActive marks an event that is open for registration.
	EventStatusActive EventStatus = "Active"
	// EventStatusInactive marks an event that has passed or was closed by an admin.
	EventStatusInactive EventStatus = "Inactive"
)
