package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis with TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: "session:",
		ttl:    ttl,
	}
}

func (s *RedisStore) New(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.prefix+token, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

func (s *RedisStore) Renew(ctx context.Context, token string) error {
	err := s.client.Expire(ctx, s.prefix+token, s.ttl).Err()
	if err != nil && err != redis.Nil {
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	err := s.client.Del(ctx, s.prefix+token).Err()
	if err != nil && err != redis.Nil {
		return err
	}
	return nil
}
