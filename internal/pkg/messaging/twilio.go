package messaging

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio client the sender depends on
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender delivers messages through the Twilio Messages API
type TwilioSender struct {
	fromNumber string
	api        messageCreator
}

// NewTwilioSender creates a Twilio-backed sender
func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{
		fromNumber: fromNumber,
		api:        client.Api,
	}
}

// Send creates a message on the Twilio Messages resource
func (s *TwilioSender) Send(ctx context.Context, to string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(text)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	if msg.ErrorCode != nil && *msg.ErrorCode != 0 {
		errText := ""
		if msg.ErrorMessage != nil {
			errText = *msg.ErrorMessage
		}
		return fmt.Errorf("twilio rejected message (code %d): %s", *msg.ErrorCode, errText)
	}
	return nil
}
