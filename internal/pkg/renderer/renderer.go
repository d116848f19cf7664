// Package renderer turns issued certificates into downloadable documents.
package renderer

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/hopebridge/eventhub/internal/app/models"
)

// DocumentRenderer produces a certificate document ready for download
type DocumentRenderer interface {
	Render(cert *models.Certificate) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// Options carries the signatory names and verification link printed on
// every certificate
type Options struct {
	DirectorName        string
	CoordinatorName     string
	VerificationBaseURL string
}

const certificateTemplate = `CERTIFICATE OF PARTICIPATION

This certificate is proudly presented to

    {{.UserName}}

for participating in

    {{.EventTitle}}

Issued on {{.IssuedOn}}
Certificate No: {{.CertificateNumber}}

{{.DirectorName}}                {{.CoordinatorName}}
Director                        Event Coordinator

Verify at: {{.VerifyURL}}
`

// TextRenderer renders certificates as plain-text documents
type TextRenderer struct {
	opts Options
	tmpl *template.Template
}

// NewTextRenderer creates a plain-text certificate renderer
func NewTextRenderer(opts Options) *TextRenderer {
	return &TextRenderer{
		opts: opts,
		tmpl: template.Must(template.New("certificate").Parse(certificateTemplate)),
	}
}

// Render fills the certificate template for the given certificate
func (r *TextRenderer) Render(cert *models.Certificate) ([]byte, error) {
	data := struct {
		UserName          string
		EventTitle        string
		IssuedOn          string
		CertificateNumber string
		DirectorName      string
		CoordinatorName   string
		VerifyURL         string
	}{
		UserName:          cert.UserName,
		EventTitle:        cert.EventTitle,
		IssuedOn:          cert.IssuedAt.Format("January 2, 2006"),
		CertificateNumber: cert.CertificateNumber,
		DirectorName:      r.opts.DirectorName,
		CoordinatorName:   r.opts.CoordinatorName,
		VerifyURL:         fmt.Sprintf("%s/%s", r.opts.VerificationBaseURL, cert.CertificateNumber),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("error rendering certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType reports the MIME type of rendered documents
func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// FileExtension reports the file extension for rendered documents
func (r *TextRenderer) FileExtension() string { return "txt" }
