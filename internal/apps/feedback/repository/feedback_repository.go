package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"spam-shield/internal/apps/feedback/models"
	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
)

// FeedbackStore defines the interface for feedback persistence
type FeedbackStore interface {
	// Create stores f; ID and CreatedAt are filled in when empty
	Create(ctx context.Context, f *models.Feedback) error
}

// NewFeedbackStore builds the FeedbackStore for the configured backend
func NewFeedbackStore(backend string, conns database.Connections) (FeedbackStore, error) {
	switch backend {
	case config.BackendMemory:
		return NewMemoryFeedbackStore(), nil
	case config.BackendFile:
		return NewFileFeedbackStore(filepath.Join(conns.DataDir, "feedback.yaml"))
	case config.BackendPostgres:
		if conns.DB == nil {
			return nil, fmt.Errorf("feedback store: postgres connection not configured")
		}
		return NewPostgresFeedbackStore(conns.DB), nil
	case config.BackendRedis:
		if conns.Redis == nil {
			return nil, fmt.Errorf("feedback store: redis connection not configured")
		}
		return NewRedisFeedbackStore(conns.Redis), nil
	case config.BackendMongo:
		if conns.Mongo == nil {
			return nil, fmt.Errorf("feedback store: mongo connection not configured")
		}
		return NewMongoFeedbackStore(conns.Mongo), nil
	default:
		return nil, fmt.Errorf("feedback store: unknown backend %q", backend)
	}
}
