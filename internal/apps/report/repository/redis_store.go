package repository

import (
	"context"

	"spam-shield/internal/common/database"

	"github.com/redis/go-redis/v9"
)

const redisReportsKey = "spam_shield:spam_reports"

// redisReportStore keeps all counts in a single hash; HINCRBY is atomic on the server
type redisReportStore struct {
	rdb *redis.Client
}

// NewRedisReportStore creates a redis backed ReportStore
func NewRedisReportStore(rdb *redis.Client) ReportStore {
	return &redisReportStore{rdb: rdb}
}

func (s *redisReportStore) Increment(ctx context.Context, phone string) (int64, error) {
	return s.rdb.HIncrBy(ctx, redisReportsKey, phone, 1).Result()
}

func (s *redisReportStore) Get(ctx context.Context, phone string) (int64, error) {
	n, err := s.rdb.HGet(ctx, redisReportsKey, phone).Int64()
	if database.IsErrRedisNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
