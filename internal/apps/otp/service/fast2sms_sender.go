package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"spam-shield/internal/common/config"
	"spam-shield/internal/common/logger"
	"spam-shield/pkg/secure"
)

// fast2smsSender sends OTPs through the Fast2SMS quick route (Indian numbers only)
type fast2smsSender struct {
	baseURL string
	apiKey  string
	expiry  time.Duration
	client  *http.Client
}

type fast2smsRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
	Wallet  json.RawMessage `json:"wallet"`
}

// NewFast2SMSSender creates a Fast2SMS backed SMSSender. A nil client uses http.DefaultClient.
func NewFast2SMSSender(baseURL, apiKey string, expiry time.Duration, client *http.Client) SMSSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &fast2smsSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		expiry:  expiry,
		client:  client,
	}
}

func (f *fast2smsSender) Name() string {
	return config.SMSProviderFast2SMS
}

func (f *fast2smsSender) Send(ctx context.Context, e164, code, name string) error {
	if !strings.HasPrefix(e164, "+91") {
		return fmt.Errorf("fast2sms only delivers to +91 numbers")
	}

	payload, err := json.Marshal(fast2smsRequest{
		Route:    "q",
		Message:  FormatMessage(name, code, f.expiry),
		Language: "english",
		Numbers:  strings.TrimPrefix(e164, "+91"),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/dev/bulkV2", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	body, err := f.do(req)
	if err != nil {
		return err
	}
	if !body.Return {
		return fmt.Errorf("fast2sms rejected message: %s", string(body.Message))
	}

	logger.Logger.Info().Str("phone", secure.MaskPhone(e164)).Msg("otp sms sent via fast2sms")
	return nil
}

// CheckSetup queries the wallet balance to confirm the key works
func (f *fast2smsSender) CheckSetup(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/dev/wallet", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("authorization", f.apiKey)

	body, err := f.do(req)
	if err != nil {
		return "", err
	}
	if !body.Return {
		return "", fmt.Errorf("fast2sms rejected key: %s", string(body.Message))
	}
	return fmt.Sprintf("Fast2SMS key is valid; wallet balance %s.", strings.Trim(string(body.Wallet), `"`)), nil
}

func (f *fast2smsSender) do(req *http.Request) (*fast2smsResponse, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fast2sms request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("fast2sms read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fast2sms API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var body fast2smsResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("fast2sms decode body: %w", err)
	}
	return &body, nil
}
