package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/hopebridge/eventhub/internal/app/models"
)

func TestTextRendererRender(t *testing.T) {
	r := NewTextRenderer(Options{
		DirectorName:        "Rakesh Sharma",
		CoordinatorName:     "Priya Nair",
		VerificationBaseURL: "https://events.example.org/certificates/verify",
	})

	cert := &models.Certificate{
		CertificateNumber: "HB-E12-U7",
		UserName:          "Asha Verma",
		EventTitle:        "Riverside Tree Plantation",
		IssuedAt:          time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC),
		EventID:           12,
	}

	out, err := r.Render(cert)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"Asha Verma",
		"Riverside Tree Plantation",
		"HB-E12-U7",
		"June 20, 2025",
		"Rakesh Sharma",
		"Priya Nair",
		"https://events.example.org/certificates/verify/HB-E12-U7",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}

	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Errorf("content type = %s", r.ContentType())
	}
	if r.FileExtension() != "txt" {
		t.Errorf("extension = %s", r.FileExtension())
	}
}
