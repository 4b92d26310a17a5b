package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Scores tolerate a short staleness window: the ledger is
// authoritative and every accepted cast invalidates the entry.
const (
	TTLScore   = 1 * time.Minute
	TTLTree    = 5 * time.Minute
	TTLDefault = 5 * time.Minute
)

// Cache keys
const (
	PrefixScore = "article:score:"
	KeyTree     = "category:tree"
)

// ErrMiss reports a cache miss.
var ErrMiss = errors.New("cache: miss")

// Service is the redis-backed cache surface the services consume. A nil
// Service is a valid "no cache" configuration.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Article score cache
	GetScore(ctx context.Context, articleID uint64) (int64, error)
	SetScore(ctx context.Context, articleID uint64, score int64) error
	InvalidateScore(ctx context.Context, articleID uint64) error

	// Category tree cache
	GetTree(ctx context.Context, dest interface{}) error
	SetTree(ctx context.Context, data interface{}) error
	InvalidateTree(ctx context.Context) error

	IsAvailable() bool
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func scoreKey(articleID uint64) string {
	return PrefixScore + strconv.FormatUint(articleID, 10)
}

func (c *redisCache) GetScore(ctx context.Context, articleID uint64) (int64, error) {
	val, err := c.client.Get(ctx, scoreKey(articleID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	if err != nil {
		return 0, fmt.Errorf("get score: %w", err)
	}
	return val, nil
}

func (c *redisCache) SetScore(ctx context.Context, articleID uint64, score int64) error {
	return c.client.Set(ctx, scoreKey(articleID), score, TTLScore).Err()
}

func (c *redisCache) InvalidateScore(ctx context.Context, articleID uint64) error {
	return c.client.Del(ctx, scoreKey(articleID)).Err()
}

func (c *redisCache) GetTree(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, KeyTree, dest)
}

func (c *redisCache) SetTree(ctx context.Context, data interface{}) error {
	return c.Set(ctx, KeyTree, data, TTLTree)
}

func (c *redisCache) InvalidateTree(ctx context.Context) error {
	return c.client.Del(ctx, KeyTree).Err()
}
