package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5432",
		User:     "shield",
		Password: "secret",
		DBName:   "spam_shield",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=shield password=secret dbname=spam_shield sslmode=disable", cfg.DSN())
}
