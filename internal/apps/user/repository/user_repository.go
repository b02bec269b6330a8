package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
)

// Directory persists verified users as phone -> name
type Directory interface {
	// Upsert records name for phone, replacing any previous name
	Upsert(ctx context.Context, phone, name string) error
	// Get returns the stored name and whether the phone is known
	Get(ctx context.Context, phone string) (string, bool, error)
}

// NewDirectory builds the Directory for the configured backend
func NewDirectory(backend string, conns database.Connections) (Directory, error) {
	switch backend {
	case config.BackendMemory:
		return NewMemoryDirectory(), nil
	case config.BackendFile:
		return NewFileDirectory(filepath.Join(conns.DataDir, "verified_users.yaml"))
	case config.BackendPostgres:
		if conns.DB == nil {
			return nil, fmt.Errorf("user directory: postgres connection not configured")
		}
		return NewPostgresDirectory(conns.DB), nil
	case config.BackendRedis:
		if conns.Redis == nil {
			return nil, fmt.Errorf("user directory: redis connection not configured")
		}
		return NewRedisDirectory(conns.Redis), nil
	case config.BackendMongo:
		if conns.Mongo == nil {
			return nil, fmt.Errorf("user directory: mongo connection not configured")
		}
		return NewMongoDirectory(conns.Mongo), nil
	default:
		return nil, fmt.Errorf("user directory: unknown backend %q", backend)
	}
}
