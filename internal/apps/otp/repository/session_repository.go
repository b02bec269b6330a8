package repository

import (
	"context"
	"fmt"
	"time"

	"spam-shield/internal/apps/otp/models"
	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
)

// SessionStore keeps verification sessions between requests.
// Load returns a private copy; callers mutate it and hand it back to Save.
type SessionStore interface {
	Load(ctx context.Context, id string) (*models.VerificationSession, bool, error)
	Save(ctx context.Context, session *models.VerificationSession) error
}

// NewSessionStore builds the SessionStore for the configured backend
func NewSessionStore(backend string, conns database.Connections, ttl time.Duration) (SessionStore, error) {
	switch backend {
	case config.BackendMemory:
		return NewMemorySessionStore(ttl), nil
	case config.BackendRedis:
		if conns.Redis == nil {
			return nil, fmt.Errorf("session store: redis connection not configured")
		}
		return NewRedisSessionStore(conns.Redis, ttl), nil
	default:
		return nil, fmt.Errorf("session store: unsupported backend %q", backend)
	}
}
