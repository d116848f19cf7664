package models

import "time"

// User is the minimal directory entry this subsystem needs: identity,
// display name, and a phone contact for reminders. Credential storage and
// token issuance live in the auth service, not here.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	RoleType     RoleType  `json:"roleType" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
