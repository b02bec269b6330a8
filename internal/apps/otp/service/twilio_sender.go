package service

import (
	"context"
	"fmt"
	"time"

	"spam-shield/internal/common/config"
	"spam-shield/internal/common/logger"
	"spam-shield/pkg/secure"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// twilioAPI is the subset of the Twilio REST client used here
type twilioAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
	FetchAccount(sid string) (*twilioApi.ApiV2010Account, error)
}

// twilioSender sends OTPs through Twilio Programmable Messaging
type twilioSender struct {
	api        twilioAPI
	accountSID string
	from       string
	expiry     time.Duration
}

// NewTwilioSender creates a Twilio backed SMSSender
func NewTwilioSender(accountSID, authToken, from string, expiry time.Duration) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioSender(client.Api, accountSID, from, expiry)
}

func newTwilioSender(api twilioAPI, accountSID, from string, expiry time.Duration) *twilioSender {
	return &twilioSender{api: api, accountSID: accountSID, from: from, expiry: expiry}
}

func (t *twilioSender) Name() string {
	return config.SMSProviderTwilio
}

// Send creates the message. The Twilio client takes no context, so cancellation
// is enforced by the caller's deadline.
func (t *twilioSender) Send(ctx context.Context, e164, code, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(e164)
	params.SetFrom(t.from)
	params.SetBody(FormatMessage(name, code, t.expiry))

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if msg != nil && msg.ErrorCode != nil {
		return fmt.Errorf("twilio rejected message: error code %d", *msg.ErrorCode)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	logger.Logger.Info().Str("phone", secure.MaskPhone(e164)).Str("sid", sid).Msg("otp sms sent via twilio")
	return nil
}

// CheckSetup fetches the account to confirm the credentials work
func (t *twilioSender) CheckSetup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	acct, err := t.api.FetchAccount(t.accountSID)
	if err != nil {
		return "", fmt.Errorf("twilio fetch account: %w", err)
	}

	status := "unknown"
	if acct != nil && acct.Status != nil {
		status = *acct.Status
	}
	if status != "active" {
		return "", fmt.Errorf("twilio account status is %q", status)
	}
	return fmt.Sprintf("Twilio account is %s; sending from %s.", status, t.from), nil
}
