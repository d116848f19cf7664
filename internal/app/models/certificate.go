package models

import "time"

// Certificate represents an issued proof of attendance. Certificates are
// independent of registration lifecycle; deleting a registration or event
// never deletes an issued certificate.
type Certificate struct {
	ID                int64     `json:"id" db:"id"`
	CertificateNumber string    `json:"certificateNumber" db:"certificate_number"`
	UserName          string    `json:"userName" db:"user_name"`
	EventTitle        string    `json:"eventTitle" db:"event_title"`
	IssuedAt          time.Time `json:"issuedAt" db:"issued_at"`
	EventID           int64     `json:"eventId" db:"event_id"`
}
