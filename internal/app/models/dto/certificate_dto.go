package dto

import "time"

// AdHocCertificateRequest is the admin payload for issuing a certificate
// outside the registration flow
type AdHocCertificateRequest struct {
	UserName   string `json:"userName" binding:"required"`
	EventTitle string `json:"eventTitle" binding:"required"`
	EventID    int64  `json:"eventId" binding:"required,min=1"`
}

// CertificateResponse is the public certificate metadata
type CertificateResponse struct {
	CertificateNumber string    `json:"certificateNumber" example:"HB-2025-0001"`
	UserName          string    `json:"userName"`
	EventTitle        string    `json:"eventTitle"`
	IssuedAt          time.Time `json:"issuedAt"`
	EventID           int64     `json:"eventId"`
}
