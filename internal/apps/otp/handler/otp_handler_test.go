package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"spam-shield/internal/apps/otp/repository"
	"spam-shield/internal/apps/otp/service"
	userrepo "spam-shield/internal/apps/user/repository"
	"spam-shield/pkg/phone"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	mu   sync.Mutex
	code string
}

func (s *capturingSender) Send(_ context.Context, _, code, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
	return nil
}

func (s *capturingSender) Name() string { return "capture" }

func (s *capturingSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

type testServer struct {
	router    *gin.Engine
	sender    *capturingSender
	directory userrepo.Directory
	now       time.Time
	cookie    *http.Cookie
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		sender:    &capturingSender{},
		directory: userrepo.NewMemoryDirectory(),
		now:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	svc := service.NewVerificationService(ts.sender, ts.directory, phone.NewNormalizer("IN"), service.Options{
		Now: func() time.Time { return ts.now },
	})
	ts.router = gin.New()
	RegisterOTPRoutes(ts.router.Group("/api/v1"), NewOTPHandler(svc, repository.NewMemorySessionStore(time.Hour), time.Hour, false))
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			ts.cookie = c
		}
	}
	return w
}

func TestOTPFlow(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha","phone":"+919876543210"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, ts.cookie)
	assert.True(t, ts.cookie.HttpOnly)
	assert.NotContains(t, w.Body.String(), ts.sender.lastCode())

	w = ts.do(t, http.MethodGet, "/api/v1/otp/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"pending"`)

	w = ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":"not-it"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INCORRECT_CODE")

	w = ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":"`+ts.sender.lastCode()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			VerifiedPhone string `json:"verified_phone"`
			Name          string `json:"name"`
			Persisted     bool   `json:"persisted"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "+919876543210", body.Data.VerifiedPhone)
	assert.Equal(t, "Asha", body.Data.Name)
	assert.True(t, body.Data.Persisted)

	w = ts.do(t, http.MethodGet, "/api/v1/otp/session", "")
	assert.Contains(t, w.Body.String(), `"state":"verified"`)

	w = ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Mallory","phone":"+14155552671"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_VERIFIED")

	w = ts.do(t, http.MethodGet, "/api/v1/otp/session", "")
	assert.Contains(t, w.Body.String(), `"state":"verified"`)
	assert.Contains(t, w.Body.String(), "+919876543210")
}

func TestOTPFlow_NumericCode(t *testing.T) {
	ts := setupServer(t)
	ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha","phone":"9876543210"}`)

	code := strings.TrimLeft(ts.sender.lastCode(), "0")
	if code == "" {
		code = "0"
	}
	w := ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":`+code+`}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestOTPFlow_Expired(t *testing.T) {
	ts := setupServer(t)
	ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha","phone":"+919876543210"}`)
	ts.now = ts.now.Add(121 * time.Second)

	w := ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":"`+ts.sender.lastCode()+`"}`)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "request a new code")

	// the expired code was discarded and the session saved
	w = ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":"`+ts.sender.lastCode()+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NO_PENDING_CODE")
}

func TestResend(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/otp/resend", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NO_PHONE_ON_FILE")

	ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha","phone":"+919876543210"}`)
	ts.now = ts.now.Add(15 * time.Second)

	w = ts.do(t, http.MethodPost, "/api/v1/otp/resend", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "45", w.Header().Get("Retry-After"))

	ts.now = ts.now.Add(45 * time.Second)
	w = ts.do(t, http.MethodPost, "/api/v1/otp/resend", "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRequestOTP_BadInput(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/otp/request", `{"name":"Asha","phone":"12"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PHONE_NUMBER")
}

func TestVerify_WithoutSession(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/otp/verify", `{"code":"123456"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSenderStatus(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/otp/sender/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider":"capture"`)
}
