package sortedstorage

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedStore keeps scored members in Redis sorted sets with TTL support.
type RedisSortedStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.SortedStore = &RedisSortedStore{}

// NewRedisSortedStore initializes a RedisSortedStore with the provided Redis
// client. A non-positive ttlSeconds keeps keys forever.
func NewRedisSortedStore(client *redis.Client, ttlSeconds int) (*RedisSortedStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}

	store := &RedisSortedStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// SetIfLower implements i.SortedStore. The read and the write happen under a
// per-member lock so concurrent submissions cannot overwrite a better score.
func (s *RedisSortedStore) SetIfLower(ctx context.Context, key, member string, score float64) (bool, error) {
	mutex := s.locker.NewMutex(key + ":" + member + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := s.client.ZScore(ctx, key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case current <= score:
		return false, nil
	}

	if err := s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	if s.ttl > 0 {
		ttl, err := s.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = s.client.Expire(ctx, key, s.ttl).Err()
		}
	}

	return true, nil
}

// Lowest implements i.SortedStore.
func (s *RedisSortedStore) Lowest(ctx context.Context, key string, n int64) ([]dmn.ScoredMember, error) {
	if n <= 0 {
		return []dmn.ScoredMember{}, nil
	}

	zs, err := s.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]dmn.ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, dmn.ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}
