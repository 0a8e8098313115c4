package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/accessflow/accessflow/internal/core/domain"
)

const (
	tokenKey = "authToken"
	userKey  = "user"
)

// RedisStore keeps the session under two Redis keys, mirroring the two
// browser-storage keys of the original client. Save writes both keys in a
// single MULTI/EXEC pipeline so a reader never observes a token without its
// user record.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an established Redis client. prefix namespaces the
// keys; it defaults to "accessflow".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "accessflow"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStore) Save(ctx context.Context, session domain.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(tokenKey), session.Token, 0)
	pipe.Set(ctx, s.key(userKey), userJSON, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, s.key(tokenKey), s.key(userKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	token, ok := vals[0].(string)
	if !ok || token == "" {
		return nil, nil
	}
	raw, ok := vals[1].(string)
	if !ok {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode persisted user: %w", err)
	}
	return &domain.Session{Token: token, User: user}, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	// DEL of missing keys is a no-op, which gives Clear its idempotence.
	if err := s.client.Del(ctx, s.key(tokenKey), s.key(userKey)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
