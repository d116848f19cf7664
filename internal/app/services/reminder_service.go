package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/pkg/messaging"
)

// ReminderStore is the registration surface the scheduler depends on
type ReminderStore interface {
	GetPendingReminders(ctx context.Context) ([]*models.Registration, error)
	MarkReminderSent(ctx context.Context, registrationID int64, sentAt time.Time) (bool, error)
}

// ReminderConfig tunes the reminder scheduler
type ReminderConfig struct {
	// Interval is how often the scheduler scans for due reminders
	Interval time.Duration
	// AnchorHour is the local hour of day treated as the event's start
	// time; event dates carry no time of day of their own.
	AnchorHour int
	// Window is how far either side of the computed send instant a
	// reminder still counts as due.
	Window time.Duration
}

// ReminderScheduler sends one-time event reminders. Each registration's
// reminder fires at the event's anchor instant minus the registrant's
// chosen lead time and is marked sent before dispatch, so a reminder is
// delivered at most once even across restarts.
type ReminderScheduler struct {
	store  ReminderStore
	sender messaging.Sender
	config ReminderConfig
	logger zerolog.Logger

	// scanMu keeps a slow scan from overlapping the next tick's scan
	scanMu sync.Mutex
}

// NewReminderScheduler creates a new ReminderScheduler
func NewReminderScheduler(store ReminderStore, sender messaging.Sender, config ReminderConfig, logger zerolog.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		store:  store,
		sender: sender,
		config: config,
		logger: logger,
	}
}

// Run scans on every tick until the context is cancelled
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.config.Interval).
		Int("anchorHour", s.config.AnchorHour).
		Msg("Reminder scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Reminder scheduler stopped")
			return
		case <-ticker.C:
			if !s.scanMu.TryLock() {
				continue
			}
			if _, err := s.Scan(ctx, time.Now()); err != nil {
				s.logger.Error().Err(err).Msg("Reminder scan failed")
			}
			s.scanMu.Unlock()
		}
	}
}

// Scan sends every reminder that is due at the given instant and reports
// how many were sent. A registration whose send fails is still counted as
// handled; the failure is logged and never retried.
func (s *ReminderScheduler) Scan(ctx context.Context, now time.Time) (int, error) {
	pending, err := s.store.GetPendingReminders(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, reg := range pending {
		if reg.Event == nil || reg.User == nil || reg.ReminderHours == nil {
			continue
		}

		target := s.sendInstant(reg.Event.Date, *reg.ReminderHours)
		diff := now.Sub(target)
		if diff < -s.config.Window || diff > s.config.Window {
			continue
		}

		// Claim the registration before dispatching. A lost claim means
		// another scan got there first.
		claimed, err := s.store.MarkReminderSent(ctx, reg.ID, now)
		if err != nil {
			s.logger.Error().Err(err).
				Int64("registrationId", reg.ID).
				Msg("Failed to mark reminder sent")
			continue
		}
		if !claimed {
			continue
		}

		text := reminderText(reg)
		if err := s.sender.Send(ctx, reg.User.Phone, text); err != nil {
			s.logger.Error().Err(err).
				Int64("registrationId", reg.ID).
				Str("to", reg.User.Phone).
				Msg("Failed to send reminder")
			continue
		}

		sent++
		s.logger.Info().
			Int64("registrationId", reg.ID).
			Int64("eventId", reg.EventID).
			Msg("Reminder sent")
	}
	return sent, nil
}

// sendInstant computes when a reminder is due: the event's date at the
// anchor hour, minus the registrant's lead time.
func (s *ReminderScheduler) sendInstant(eventDate time.Time, hoursBefore int) time.Time {
	y, m, d := eventDate.Date()
	anchor := time.Date(y, m, d, s.config.AnchorHour, 0, 0, 0, time.Local)
	return anchor.Add(-time.Duration(hoursBefore) * time.Hour)
}

func reminderText(reg *models.Registration) string {
	return fmt.Sprintf("Reminder: %s is on %s at %s. We look forward to seeing you!",
		reg.Event.Title, reg.Event.Date.Format("02 Jan 2006"), reg.Event.Location)
}
