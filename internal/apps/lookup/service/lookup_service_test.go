package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"spam-shield/internal/apps/lookup/models"
	"spam-shield/internal/apps/lookup/repository"
	"spam-shield/internal/common/apperr"
	"spam-shield/pkg/phone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "+919876543210"

type staticCounter struct {
	count int64
	err   error
}

func (s staticCounter) LookupReportCount(context.Context, string) (int64, error) {
	return s.count, s.err
}

type staticLookup struct {
	md    models.Metadata
	calls atomic.Int32
}

func (s *staticLookup) Lookup(context.Context, string) models.Metadata {
	s.calls.Add(1)
	return s.md
}

func numlookupServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v1/validate/"+testPhone, r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("apikey"))
		_, _ = w.Write([]byte(`{"valid":true,"carrier":"Reliance Jio","location":"Mumbai","line_type":"mobile","country_name":"India (Republic of)"}`))
	}))
}

func TestNumlookupClient(t *testing.T) {
	var hits atomic.Int32
	srv := numlookupServer(t, &hits)
	defer srv.Close()

	md := NewNumlookupClient(srv.URL, "key", time.Second, srv.Client()).Lookup(context.Background(), testPhone)
	assert.False(t, md.Degraded)
	assert.Equal(t, "Reliance Jio", md.Carrier)
	assert.Equal(t, "Mumbai", md.Location)
	assert.Equal(t, "mobile", md.LineType)
	assert.Equal(t, "India (Republic of)", md.Country)
}

func TestNumlookupClient_Degrades(t *testing.T) {
	t.Run("no api key", func(t *testing.T) {
		md := NewNumlookupClient("http://unused", "", time.Second, nil).Lookup(context.Background(), testPhone)
		assert.True(t, md.Degraded)
		assert.Equal(t, models.Unknown, md.Carrier)
	})

	t.Run("rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		md := NewNumlookupClient(srv.URL, "key", time.Second, srv.Client()).Lookup(context.Background(), testPhone)
		assert.True(t, md.Degraded)
		assert.Contains(t, md.Reason, "429")
		assert.Equal(t, models.Unknown, md.Country)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		md := NewNumlookupClient(srv.URL, "key", time.Second, srv.Client()).Lookup(context.Background(), testPhone)
		assert.True(t, md.Degraded)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		md := NewNumlookupClient(srv.URL, "key", 50*time.Millisecond, srv.Client()).Lookup(context.Background(), testPhone)
		assert.True(t, md.Degraded)
	})

	t.Run("missing fields", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"valid":true,"carrier":"Airtel"}`))
		}))
		defer srv.Close()

		md := NewNumlookupClient(srv.URL, "key", time.Second, srv.Client()).Lookup(context.Background(), testPhone)
		assert.False(t, md.Degraded)
		assert.Equal(t, "Airtel", md.Carrier)
		assert.Equal(t, models.Unknown, md.Location)
	})
}

func TestCachedLookup(t *testing.T) {
	inner := &staticLookup{md: models.Metadata{Carrier: "Jio", Location: "Pune", LineType: "mobile", Country: "India"}}
	lookup := NewCachedLookup(inner, repository.NewMemoryMetadataCache(time.Hour))

	first := lookup.Lookup(context.Background(), testPhone)
	second := lookup.Lookup(context.Background(), testPhone)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedLookup_DoesNotCacheDegraded(t *testing.T) {
	inner := &staticLookup{md: models.UnknownMetadata("down")}
	lookup := NewCachedLookup(inner, repository.NewMemoryMetadataCache(time.Hour))

	lookup.Lookup(context.Background(), testPhone)
	lookup.Lookup(context.Background(), testPhone)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestLookupNumber(t *testing.T) {
	inner := &staticLookup{md: models.Metadata{Carrier: "Jio", Location: "Pune", LineType: "mobile", Country: "India"}}
	svc := NewLookupService(phone.NewNormalizer("IN"), inner, staticCounter{count: 3})

	resp, err := svc.LookupNumber(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, testPhone, resp.Phone)
	assert.Equal(t, int64(3), resp.ReportCount)
	assert.True(t, resp.ReportedAsSpam)
	assert.Equal(t, "Jio", resp.Metadata.Carrier)
	assert.NotEmpty(t, resp.Region)
}

func TestLookupNumber_DegradedMetadataIsNotAnError(t *testing.T) {
	svc := NewLookupService(phone.NewNormalizer("IN"), &staticLookup{md: models.UnknownMetadata("offline")}, staticCounter{})

	resp, err := svc.LookupNumber(context.Background(), testPhone)
	require.NoError(t, err)
	assert.True(t, resp.Metadata.Degraded)
	assert.Equal(t, int64(0), resp.ReportCount)
	assert.False(t, resp.ReportedAsSpam)
}

func TestLookupNumber_Errors(t *testing.T) {
	md := &staticLookup{md: models.UnknownMetadata("")}

	_, err := NewLookupService(phone.NewNormalizer("IN"), md, staticCounter{}).LookupNumber(context.Background(), "abc")
	assert.ErrorIs(t, err, apperr.ErrInvalidPhoneNumber)

	_, err = NewLookupService(phone.NewNormalizer("IN"), md, staticCounter{err: errors.New("db down")}).LookupNumber(context.Background(), testPhone)
	assert.ErrorIs(t, err, apperr.ErrStorage)
}
