package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spam-shield/internal/apps/lookup/models"
	"spam-shield/internal/apps/lookup/repository"
	"spam-shield/internal/common/logger"
	"spam-shield/internal/common/metrics"
)

// MetadataLookup fetches carrier and location details for a number.
// It never fails; problems are reported through Metadata.Degraded.
type MetadataLookup interface {
	Lookup(ctx context.Context, e164 string) models.Metadata
}

// numlookupClient queries numlookupapi.com
type numlookupClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

type numlookupResponse struct {
	Valid       bool   `json:"valid"`
	Carrier     string `json:"carrier"`
	Location    string `json:"location"`
	LineType    string `json:"line_type"`
	CountryName string `json:"country_name"`
}

// NewNumlookupClient creates a MetadataLookup for numlookupapi. A nil client uses http.DefaultClient.
func NewNumlookupClient(baseURL, apiKey string, timeout time.Duration, client *http.Client) MetadataLookup {
	if client == nil {
		client = http.DefaultClient
	}
	return &numlookupClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		client:  client,
	}
}

func (c *numlookupClient) Lookup(ctx context.Context, e164 string) models.Metadata {
	if c.apiKey == "" {
		return models.UnknownMetadata("number lookup is not configured")
	}

	md, err := c.fetch(ctx, e164)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("number lookup failed")
		return models.UnknownMetadata(err.Error())
	}
	return md
}

func (c *numlookupClient) fetch(ctx context.Context, e164 string) (models.Metadata, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL := fmt.Sprintf("%s/v1/validate/%s?%s", c.baseURL, url.PathEscape(e164), url.Values{"apikey": {c.apiKey}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Metadata{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("numlookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Metadata{}, fmt.Errorf("numlookup returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out numlookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Metadata{}, fmt.Errorf("numlookup decode: %w", err)
	}

	return models.Metadata{
		Carrier:  orUnknown(out.Carrier),
		Location: orUnknown(out.Location),
		LineType: orUnknown(out.LineType),
		Country:  orUnknown(out.CountryName),
	}, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.Unknown
	}
	return s
}

// cachedLookup serves repeated lookups from a MetadataCache
type cachedLookup struct {
	next  MetadataLookup
	cache repository.MetadataCache
}

// NewCachedLookup wraps next with cache. Only complete results are cached.
func NewCachedLookup(next MetadataLookup, cache repository.MetadataCache) MetadataLookup {
	return &cachedLookup{next: next, cache: cache}
}

func (c *cachedLookup) Lookup(ctx context.Context, e164 string) models.Metadata {
	md, found, err := c.cache.Get(ctx, e164)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("metadata cache read failed")
	}
	if found {
		metrics.RecordNumberLookup("cache")
		return md
	}

	md = c.next.Lookup(ctx, e164)
	if md.Degraded {
		metrics.RecordNumberLookup("degraded")
		return md
	}

	metrics.RecordNumberLookup("api")
	if err := c.cache.Set(ctx, e164, md); err != nil {
		logger.Logger.Warn().Err(err).Msg("metadata cache write failed")
	}
	return md
}
