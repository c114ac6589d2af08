package redisstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeSessionPrefix = "krishi:active_session:"

// active sessions expire after a month without turns
const activeSessionTTL = 30 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Store{rdb: rdb}, nil
}

// NewWithClient wraps a client the caller already configured.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Client() *redis.Client { return s.rdb }

func (s *Store) Close() error { return s.rdb.Close() }

func activeKey(userID uint64) string {
	return activeSessionPrefix + strconv.FormatUint(userID, 10)
}

func (s *Store) ActiveSession(ctx context.Context, userID uint64) (string, bool, error) {
	sid, err := s.rdb.Get(ctx, activeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return sid, true, nil
}

func (s *Store) SetActiveSession(ctx context.Context, userID uint64, sessionID string) error {
	return s.rdb.Set(ctx, activeKey(userID), sessionID, activeSessionTTL).Err()
}
