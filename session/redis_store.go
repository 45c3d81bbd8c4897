package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) getKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *RedisStore) getMemoKey(key string) string {
	return "idem:checkout:" + key
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.getKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	s.ensure()
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(s.ID), data, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.getKey(id)).Err()
}

func (r *RedisStore) Remember(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.getMemoKey(key), value, ttl).Err()
}

// Reserve is SET NX: only the first caller for key gets true.
func (r *RedisStore) Reserve(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.getMemoKey(key), value, ttl).Result()
}

func (r *RedisStore) Forget(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getMemoKey(key)).Err()
}

func (r *RedisStore) Recall(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.getMemoKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
