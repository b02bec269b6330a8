package repository

import (
	"context"
	"encoding/json"
	"time"

	"spam-shield/internal/apps/otp/models"
	"spam-shield/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// redisSessionStore keeps each session as a JSON string with a TTL
type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionStore creates a redis backed SessionStore
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *redisSessionStore) Load(ctx context.Context, id string) (*models.VerificationSession, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if database.IsErrRedisNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var session models.VerificationSession
	if err := json.Unmarshal(b, &session); err != nil {
		return nil, false, err
	}
	return &session, true, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *models.VerificationSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(session.ID), b, s.ttl).Err()
}

func (s *redisSessionStore) key(id string) string {
	return "spam_shield:session:" + id
}
