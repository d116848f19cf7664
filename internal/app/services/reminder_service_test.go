package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/app/models"
)

func newTestScheduler(sender *fakeSender) (*ReminderScheduler, *fakeEventStore, *fakeRegistrationStore) {
	events := newFakeEventStore()
	regs := newFakeRegistrationStore(events)
	scheduler := NewReminderScheduler(regs, sender, ReminderConfig{
		Interval:   time.Minute,
		AnchorHour: 9,
		Window:     time.Minute,
	}, zerolog.Nop())
	return scheduler, events, regs
}

func seedReminder(t *testing.T, events *fakeEventStore, regs *fakeRegistrationStore, userID int64, phone string, eventDate time.Time, hours int) int64 {
	t.Helper()
	ctx := context.Background()
	eventID, err := events.Create(ctx, &models.Event{
		Title:    "Beach Cleanup",
		Location: "North Shore",
		Date:     eventDate,
		Status:   models.EventStatusActive,
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	regs.users[userID] = &models.User{ID: userID, Name: "Asha", Phone: phone}
	h := hours
	id, err := regs.Create(ctx, &models.Registration{EventID: eventID, UserID: userID, Members: 1, ReminderHours: &h})
	if err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	return id
}

func TestScanSendsDueReminderOnce(t *testing.T) {
	sender := &fakeSender{}
	scheduler, events, regs := newTestScheduler(sender)
	ctx := context.Background()

	eventDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	seedReminder(t, events, regs, 1, "+15550001", eventDate, 24)

	// 24h before the 09:00 anchor on June 16 is 09:00 on June 15.
	due := time.Date(2025, 6, 15, 9, 0, 30, 0, time.Local)
	sent, err := scheduler.Scan(ctx, due)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected exactly one reminder, sent=%d messages=%d", sent, len(sender.sent))
	}
	if sender.sent[0].to != "+15550001" {
		t.Errorf("sent to %s", sender.sent[0].to)
	}

	// A later scan inside the window must not send again.
	sent, err = scheduler.Scan(ctx, due.Add(20*time.Second))
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if sent != 0 || len(sender.sent) != 1 {
		t.Fatalf("reminder sent twice: sent=%d messages=%d", sent, len(sender.sent))
	}
}

func TestScanSkipsOutsideWindow(t *testing.T) {
	sender := &fakeSender{}
	scheduler, events, regs := newTestScheduler(sender)
	ctx := context.Background()

	eventDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	seedReminder(t, events, regs, 1, "+15550001", eventDate, 24)

	early := time.Date(2025, 6, 15, 8, 55, 0, 0, time.Local)
	late := time.Date(2025, 6, 15, 9, 5, 0, 0, time.Local)
	for _, at := range []time.Time{early, late} {
		sent, err := scheduler.Scan(ctx, at)
		if err != nil {
			t.Fatalf("scan at %v: %v", at, err)
		}
		if sent != 0 {
			t.Errorf("reminder sent outside window at %v", at)
		}
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no messages, got %d", len(sender.sent))
	}
}

func TestScanSkipsRegistrationsWithoutPhone(t *testing.T) {
	sender := &fakeSender{}
	scheduler, events, regs := newTestScheduler(sender)
	ctx := context.Background()

	eventDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	seedReminder(t, events, regs, 1, "", eventDate, 24)

	due := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	sent, err := scheduler.Scan(ctx, due)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 0 || len(sender.sent) != 0 {
		t.Errorf("reminder sent to registrant without phone")
	}
}

func TestScanSendFailureIsNotRetried(t *testing.T) {
	sender := &fakeSender{err: errors.New("gateway unavailable")}
	scheduler, events, regs := newTestScheduler(sender)
	ctx := context.Background()

	eventDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	regID := seedReminder(t, events, regs, 1, "+15550001", eventDate, 24)

	due := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	sent, err := scheduler.Scan(ctx, due)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 0 {
		t.Errorf("failed send counted as sent")
	}

	// The registration was claimed before dispatch, so the failure does
	// not produce a retry on the next scan.
	sender.err = nil
	sent, err = scheduler.Scan(ctx, due.Add(10*time.Second))
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if sent != 0 || len(sender.sent) != 0 {
		t.Errorf("failed reminder was retried")
	}

	pending, _ := regs.GetPendingReminders(ctx)
	for _, reg := range pending {
		if reg.ID == regID {
			t.Errorf("failed registration still pending")
		}
	}
}

func TestScanFailureOnOneDoesNotBlockOthers(t *testing.T) {
	sender := &fakeSender{}
	scheduler, events, regs := newTestScheduler(sender)
	ctx := context.Background()

	eventDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	seedReminder(t, events, regs, 1, "+15550001", eventDate, 24)
	seedReminder(t, events, regs, 2, "+15550002", eventDate, 24)
	sender.failTo = "+15550001"

	due := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	sent, err := scheduler.Scan(ctx, due)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected the healthy reminder to go out, sent=%d", sent)
	}
	if sender.sent[0].to != "+15550002" {
		t.Errorf("sent to %s", sender.sent[0].to)
	}
}
