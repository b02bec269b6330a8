package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	assert.Equal(t, "prod", GetEnvironment())

	t.Setenv("GO_ENV", "staging")
	assert.Equal(t, "local", GetEnvironment())
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("OTP_EXPIRY", "90")
	assert.Equal(t, 90*time.Second, GetEnvDuration("OTP_EXPIRY", time.Minute))

	t.Setenv("OTP_EXPIRY", "2m")
	assert.Equal(t, 2*time.Minute, GetEnvDuration("OTP_EXPIRY", time.Minute))

	t.Setenv("OTP_EXPIRY", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("OTP_EXPIRY", time.Minute))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	assert.Equal(t, 3, GetEnvInt("REDIS_DB", 0))

	t.Setenv("REDIS_DB", "x")
	assert.Equal(t, 0, GetEnvInt("REDIS_DB", 0))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("SPAM_KEYWORDS", " win, free ,,prize ")
	assert.Equal(t, []string{"win", "free", "prize"}, GetEnvList("SPAM_KEYWORDS", nil))

	t.Setenv("SPAM_KEYWORDS", "")
	assert.Equal(t, []string{"a"}, GetEnvList("SPAM_KEYWORDS", []string{"a"}))
}
