package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Connections bundles the backends a repository factory may pick from.
// Only the fields required by the configured backend are set.
type Connections struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Mongo   *mongo.Database
	DataDir string
}

// Close releases every open connection
func (c Connections) Close(ctx context.Context) {
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Mongo != nil {
		_ = c.Mongo.Client().Disconnect(ctx)
	}
}
