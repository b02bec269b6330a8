package service

import (
	"context"
	"fmt"
	"time"

	"spam-shield/internal/common/config"
	"spam-shield/internal/common/logger"
	"spam-shield/pkg/secure"
)

// SMSSender delivers an OTP to a phone number. Implementations must honour ctx.
type SMSSender interface {
	Send(ctx context.Context, e164, code, name string) error
	Name() string
}

// SetupChecker is implemented by senders that can verify their credentials
type SetupChecker interface {
	CheckSetup(ctx context.Context) (string, error)
}

// FormatMessage renders the SMS body sent with every code
func FormatMessage(name, code string, expiry time.Duration) string {
	return fmt.Sprintf("Hello %s,\nYour Spam Shield OTP is: %s\nIt will expire in %s.\n- Spam Shield",
		name, code, humanDuration(expiry))
}

func humanDuration(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(d/time.Second))
}

// noOpSender skips SMS delivery (for local environment)
type noOpSender struct{}

// NewNoOpSender creates a sender that only logs
func NewNoOpSender() SMSSender {
	return &noOpSender{}
}

func (n *noOpSender) Send(ctx context.Context, e164, code, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Logger.Warn().
		Str("phone", secure.MaskPhone(e164)).
		Str("code", code).
		Str("name", name).
		Msg("noop sms sender: skipping delivery")
	return nil
}

func (n *noOpSender) Name() string {
	return config.SMSProviderNoOp
}

func (n *noOpSender) CheckSetup(context.Context) (string, error) {
	return "SMS delivery is disabled; codes are written to the log.", nil
}

// NewSMSSender builds the sender selected by cfg.Provider
func NewSMSSender(cfg config.SMSConfig, expiry time.Duration) (SMSSender, error) {
	switch cfg.Provider {
	case config.SMSProviderNoOp, "":
		return NewNoOpSender(), nil
	case config.SMSProviderTwilio:
		return NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, expiry), nil
	case config.SMSProviderFast2SMS:
		return NewFast2SMSSender(cfg.Fast2SMSBaseURL, cfg.Fast2SMSAPIKey, expiry, nil), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}
