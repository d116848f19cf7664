package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
)

func newTestCertificateService() (*certificateServiceImpl, *fakeCertificateStore, *fakeEventStore, *fakeRegistrationStore, *fakeUserStore) {
	events := newFakeEventStore()
	regs := newFakeRegistrationStore(events)
	certs := newFakeCertificateStore()
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Name: "Asha Verma", Email: "asha@example.com"},
	}}
	svc := NewCertificateService(certs, events, regs, users, "HB", zerolog.Nop()).(*certificateServiceImpl)
	svc.now = func() time.Time { return testNow }
	return svc, certs, events, regs, users
}

func TestIssueForAttendeeIsIdempotent(t *testing.T) {
	svc, certs, events, regs, _ := newTestCertificateService()
	ctx := context.Background()
	eventID := seedEvent(t, events, testNow.AddDate(0, 0, -5), models.EventStatusInactive, 0)
	regs.Create(ctx, &models.Registration{EventID: eventID, UserID: 1, Members: 1})

	first, err := svc.IssueForAttendee(ctx, eventID, 1)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := svc.IssueForAttendee(ctx, eventID, 1)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if first.CertificateNumber != second.CertificateNumber {
		t.Errorf("numbers differ: %s vs %s", first.CertificateNumber, second.CertificateNumber)
	}
	if first.ID != second.ID {
		t.Errorf("a second certificate record was created")
	}
	count, _ := certs.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 stored certificate, got %d", count)
	}
	if first.UserName != "Asha Verma" {
		t.Errorf("unexpected user name %q", first.UserName)
	}
}

func TestIssueForAttendeeGates(t *testing.T) {
	svc, _, events, _, _ := newTestCertificateService()
	ctx := context.Background()
	eventID := seedEvent(t, events, testNow.AddDate(0, 0, -5), models.EventStatusInactive, 0)

	if _, err := svc.IssueForAttendee(ctx, eventID, 1); !errors.Is(err, apperrors.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if _, err := svc.IssueForAttendee(ctx, 999, 1); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestIssueForAttendeeBeforeEventDate(t *testing.T) {
	svc, _, events, regs, _ := newTestCertificateService()
	ctx := context.Background()
	eventID := seedEvent(t, events, testNow.AddDate(0, 0, 5), models.EventStatusActive, 0)
	regs.Create(ctx, &models.Registration{EventID: eventID, UserID: 1, Members: 1})

	// Registration alone grants the certificate; the event date plays no
	// part in issuance.
	cert, err := svc.IssueForAttendee(ctx, eventID, 1)
	if err != nil {
		t.Fatalf("issue for upcoming event: %v", err)
	}
	if cert.UserName != "Asha Verma" {
		t.Errorf("unexpected user name %q", cert.UserName)
	}
}

func TestIssueAdHocSequentialNumbers(t *testing.T) {
	svc, _, events, _, _ := newTestCertificateService()
	ctx := context.Background()
	eventID := seedEvent(t, events, testNow.AddDate(0, 0, -5), models.EventStatusInactive, 0)

	first, err := svc.IssueAdHoc(ctx, &dto.AdHocCertificateRequest{
		UserName:   "Guest Speaker",
		EventTitle: "Community Food Drive",
		EventID:    eventID,
	})
	if err != nil {
		t.Fatalf("first ad hoc: %v", err)
	}
	second, err := svc.IssueAdHoc(ctx, &dto.AdHocCertificateRequest{
		UserName:   "Volunteer Lead",
		EventTitle: "Community Food Drive",
		EventID:    eventID,
	})
	if err != nil {
		t.Fatalf("second ad hoc: %v", err)
	}

	if first.CertificateNumber != "HB-2025-0001" {
		t.Errorf("unexpected first number %s", first.CertificateNumber)
	}
	if second.CertificateNumber != "HB-2025-0002" {
		t.Errorf("unexpected second number %s", second.CertificateNumber)
	}
}

func TestFindByNumber(t *testing.T) {
	svc, _, events, regs, _ := newTestCertificateService()
	ctx := context.Background()
	eventID := seedEvent(t, events, testNow.AddDate(0, 0, -5), models.EventStatusInactive, 0)
	regs.Create(ctx, &models.Registration{EventID: eventID, UserID: 1, Members: 1})

	issued, err := svc.IssueForAttendee(ctx, eventID, 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	found, err := svc.FindByNumber(ctx, issued.CertificateNumber)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserName != issued.UserName || found.EventTitle != issued.EventTitle {
		t.Errorf("lookup returned different certificate: %+v", found)
	}

	if _, err := svc.FindByNumber(ctx, "HB-0000-9999"); !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Fatalf("expected ErrCertificateNotFound, got %v", err)
	}
}
