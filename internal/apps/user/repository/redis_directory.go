package repository

import (
	"context"

	"spam-shield/internal/common/database"

	"github.com/redis/go-redis/v9"
)

const redisUsersKey = "spam_shield:verified_users"

type redisDirectory struct {
	rdb *redis.Client
}

// NewRedisDirectory creates a redis backed Directory storing all users in one hash
func NewRedisDirectory(rdb *redis.Client) Directory {
	return &redisDirectory{rdb: rdb}
}

func (d *redisDirectory) Upsert(ctx context.Context, phone, name string) error {
	return d.rdb.HSet(ctx, redisUsersKey, phone, name).Err()
}

func (d *redisDirectory) Get(ctx context.Context, phone string) (string, bool, error) {
	name, err := d.rdb.HGet(ctx, redisUsersKey, phone).Result()
	if database.IsErrRedisNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}
