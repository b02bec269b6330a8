package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
)

// ReportStore is the persistence contract of the spam report ledger.
// Increment must be atomic: concurrent callers never lose an update.
type ReportStore interface {
	// Increment creates the record with count 1 or adds 1, returning the new count
	Increment(ctx context.Context, phone string) (int64, error)
	// Get returns the current count, 0 when the number was never reported
	Get(ctx context.Context, phone string) (int64, error)
}

// NewReportStore builds the ReportStore for the configured backend
func NewReportStore(backend string, conns database.Connections) (ReportStore, error) {
	switch backend {
	case config.BackendMemory:
		return NewMemoryReportStore(), nil
	case config.BackendFile:
		return NewFileReportStore(filepath.Join(conns.DataDir, "spam_reports.yaml"))
	case config.BackendPostgres:
		if conns.DB == nil {
			return nil, fmt.Errorf("report store: postgres connection not configured")
		}
		return NewPostgresReportStore(conns.DB), nil
	case config.BackendRedis:
		if conns.Redis == nil {
			return nil, fmt.Errorf("report store: redis connection not configured")
		}
		return NewRedisReportStore(conns.Redis), nil
	case config.BackendMongo:
		if conns.Mongo == nil {
			return nil, fmt.Errorf("report store: mongo connection not configured")
		}
		return NewMongoReportStore(conns.Mongo), nil
	default:
		return nil, fmt.Errorf("report store: unknown backend %q", backend)
	}
}
