// Package messaging provides the outbound text-message transport used by
// the reminder scheduler. Implementations deliver a short text to a phone
// number; delivery failures are reported to the caller and never retried
// here.
package messaging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/pkg/logger"
)

// Sender delivers a text message to a single recipient
type Sender interface {
	Send(ctx context.Context, to string, text string) error
}

// Config selects and configures the message provider
type Config struct {
	Provider   string
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewSender builds the Sender named by cfg.Provider
func NewSender(cfg Config) (Sender, error) {
	switch cfg.Provider {
	case "twilio":
		return NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.FromNumber), nil
	case "log", "":
		return NewLogSender(), nil
	default:
		return nil, fmt.Errorf("unknown messaging provider: %s", cfg.Provider)
	}
}

// LogSender writes messages to the application log instead of delivering
// them. It is the default provider for development and tests.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender() *LogSender {
	return &LogSender{logger: logger.WithComponent("messaging")}
}

// Send logs the message and reports success
func (s *LogSender) Send(_ context.Context, to string, text string) error {
	s.logger.Info().
		Str("to", to).
		Str("text", text).
		Msg("Message delivery (log provider)")
	return nil
}
