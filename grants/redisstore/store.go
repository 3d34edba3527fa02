// Package redisstore is the Redis-backed implementation of the grant store.
// Expiry is delegated to Redis key TTLs and single-use semantics to GETDEL,
// so atomicity holds across multiple server instances sharing one Redis.
package redisstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jrsteele09/go-authz-server/grants"
	"github.com/pkg/errors"
)

var _ grants.Store = (*Store)(nil)

type Store struct {
	rdb *redis.Client
}

// New creates a store over an existing Redis client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "[redisstore.Connect] ping")
	}
	return New(rdb), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Put] set")
	}
	return nil
}

// Take relies on GETDEL: Redis executes commands serially per key, so two
// concurrent redeemers cannot both observe the value.
func (s *Store) Take(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, grants.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[redisstore.Take] getdel")
	}
	return value, nil
}

// Close releases the underlying Redis client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
