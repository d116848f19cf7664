package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestNewSenderProviderSelection(t *testing.T) {
	sender, err := NewSender(Config{Provider: "log"})
	if err != nil {
		t.Fatalf("log provider: %v", err)
	}
	if _, ok := sender.(*LogSender); !ok {
		t.Errorf("expected LogSender, got %T", sender)
	}

	sender, err = NewSender(Config{})
	if err != nil {
		t.Fatalf("empty provider: %v", err)
	}
	if _, ok := sender.(*LogSender); !ok {
		t.Errorf("expected LogSender for empty provider, got %T", sender)
	}

	sender, err = NewSender(Config{Provider: "twilio", AccountSID: "AC123", AuthToken: "tok", FromNumber: "+15550000"})
	if err != nil {
		t.Fatalf("twilio provider: %v", err)
	}
	if _, ok := sender.(*TwilioSender); !ok {
		t.Errorf("expected TwilioSender, got %T", sender)
	}

	if _, err := NewSender(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

type fakeMessageAPI struct {
	gotParams *twilioApi.CreateMessageParams
	resp      *twilioApi.ApiV2010Message
	err       error
}

func (f *fakeMessageAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSenderCreatesMessage(t *testing.T) {
	api := &fakeMessageAPI{}
	sender := &TwilioSender{fromNumber: "+15550000", api: api}

	if err := sender.Send(context.Background(), "+15551111", "see you tomorrow"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if api.gotParams == nil {
		t.Fatal("no message created")
	}
	if got := api.gotParams.To; got == nil || *got != "+15551111" {
		t.Errorf("unexpected To %v", got)
	}
	if got := api.gotParams.From; got == nil || *got != "+15550000" {
		t.Errorf("unexpected From %v", got)
	}
	if got := api.gotParams.Body; got == nil || *got != "see you tomorrow" {
		t.Errorf("unexpected Body %v", got)
	}
}

func TestTwilioSenderAPIError(t *testing.T) {
	api := &fakeMessageAPI{err: errors.New("authenticate")}
	sender := &TwilioSender{fromNumber: "+15550000", api: api}

	err := sender.Send(context.Background(), "bogus", "hello")
	if err == nil || !strings.Contains(err.Error(), "authenticate") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestTwilioSenderRejectedMessage(t *testing.T) {
	code := 21211
	message := "invalid 'To' phone number"
	api := &fakeMessageAPI{resp: &twilioApi.ApiV2010Message{ErrorCode: &code, ErrorMessage: &message}}
	sender := &TwilioSender{fromNumber: "+15550000", api: api}

	err := sender.Send(context.Background(), "bogus", "hello")
	if err == nil || !strings.Contains(err.Error(), "21211") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestTwilioSenderCancelledContext(t *testing.T) {
	api := &fakeMessageAPI{}
	sender := &TwilioSender{fromNumber: "+15550000", api: api}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sender.Send(ctx, "+15551111", "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if api.gotParams != nil {
		t.Error("message created despite cancelled context")
	}
}
