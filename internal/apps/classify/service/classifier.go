package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classifier predicts a spam label (1 spam, 0 not spam) for a message
type Classifier interface {
	Predict(ctx context.Context, text string) (int, error)
}

// httpClassifier calls a model server that accepts {"text": ...} and answers {"label": 0|1}
type httpClassifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Label *int `json:"label"`
}

// NewHTTPClassifier creates a Classifier backed by a model server.
// An empty url returns nil, meaning classification runs on keywords only.
func NewHTTPClassifier(url string, timeout time.Duration, client *http.Client) Classifier {
	if url == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClassifier{url: url, timeout: timeout, client: client}
}

func (c *httpClassifier) Predict(ctx context.Context, text string) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("classifier decode: %w", err)
	}
	if out.Label == nil || (*out.Label != 0 && *out.Label != 1) {
		return 0, fmt.Errorf("classifier returned an invalid label")
	}
	return *out.Label, nil
}
