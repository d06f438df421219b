package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisSeqKey     = "vite:links:seq"
	redisLinkPrefix = "vite:link:"
)

// insertScript assigns the next id and writes the link hash in one atomic step.
// The hash key is built inside the script from ARGV[1] and is not declared in
// KEYS, so the script needs a single Redis node. Redis Cluster would reject it
// whenever the hash lands in a different slot from the sequence key.
var insertScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', ARGV[1] .. id, 'value', ARGV[2], 'clicks', '0')
return id
`)

// incrScript bumps clicks only when the link exists; -1 signals a missing link.
var incrScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], 'clicks', 1)
`)

// RedisLinkStore keeps links as Redis hashes keyed by id, with ids drawn from
// an INCR sequence. Scripts run atomically, so a failed call leaves no
// partial write behind.
type RedisLinkStore struct {
	rdb *redis.Client
}

// NewRedisLinkStore returns a RedisLinkStore using rdb.
func NewRedisLinkStore(rdb *redis.Client) *RedisLinkStore {
	return &RedisLinkStore{rdb: rdb}
}

func redisLinkKey(id int64) string {
	return redisLinkPrefix + strconv.FormatInt(id, 10)
}

// Insert stores value with zero clicks and returns its assigned id.
func (s *RedisLinkStore) Insert(ctx context.Context, value string) (int64, error) {
	id, err := insertScript.Run(ctx, s.rdb, []string{redisSeqKey}, redisLinkPrefix, value).Int64()
	if err != nil {
		return 0, fmt.Errorf("insert link: %w", err)
	}
	return id, nil
}

// Get returns the link with the given id, or ErrNotFound.
func (s *RedisLinkStore) Get(ctx context.Context, id int64) (*Link, error) {
	fields, err := s.rdb.HGetAll(ctx, redisLinkKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get link %d: %w", id, err)
	}
	value, ok := fields["value"]
	if !ok {
		return nil, ErrNotFound
	}
	clicks, err := strconv.ParseInt(fields["clicks"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("get link %d: parse clicks: %w", id, err)
	}
	return &Link{ID: id, Value: value, Clicks: clicks}, nil
}

// IncrementClicks adds one to the click counter of id.
func (s *RedisLinkStore) IncrementClicks(ctx context.Context, id int64) error {
	n, err := incrScript.Run(ctx, s.rdb, []string{redisLinkKey(id)}).Int64()
	if err != nil {
		return fmt.Errorf("increment clicks %d: %w", id, err)
	}
	if n < 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored links. Links are never deleted, so the
// sequence value is the count.
func (s *RedisLinkStore) Count(ctx context.Context) (int64, error) {
	n, err := s.rdb.Get(ctx, redisSeqKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return n, nil
}

// Ping checks the Redis connection.
func (s *RedisLinkStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
