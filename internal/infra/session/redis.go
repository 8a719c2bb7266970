package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domproduct "example.com/catalog-dashboard/internal/domain/product"
)

const (
	keyFilters  = "filters_dashboard"
	keyTheme    = "theme"
	keyViewMode = "view_mode"
)

// RedisStore keeps session state under session:{sid}:{key}. Every
// write refreshes the TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(sid, name string) string {
	return "session:" + sid + ":" + name
}

func (s *RedisStore) Filters(ctx context.Context, sid string) (*domproduct.FilterState, error) {
	raw, err := s.rdb.Get(ctx, s.key(sid, keyFilters)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state domproduct.FilterState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) SetFilters(ctx context.Context, sid string, state domproduct.FilterState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sid, keyFilters), data, s.ttl).Err()
}

func (s *RedisStore) ClearFilters(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.key(sid, keyFilters)).Err()
}

func (s *RedisStore) Theme(ctx context.Context, sid string) (string, error) {
	return s.getString(ctx, s.key(sid, keyTheme))
}

func (s *RedisStore) SetTheme(ctx context.Context, sid, theme string) error {
	return s.rdb.Set(ctx, s.key(sid, keyTheme), theme, s.ttl).Err()
}

func (s *RedisStore) ViewMode(ctx context.Context, sid string) (string, error) {
	return s.getString(ctx, s.key(sid, keyViewMode))
}

func (s *RedisStore) SetViewMode(ctx context.Context, sid, mode string) error {
	return s.rdb.Set(ctx, s.key(sid, keyViewMode), mode, s.ttl).Err()
}

func (s *RedisStore) Flush(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx,
		s.key(sid, keyFilters),
		s.key(sid, keyTheme),
		s.key(sid, keyViewMode),
	).Err()
}

func (s *RedisStore) getString(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
