// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// ViewCache stores by-ISBN book views.
//
// Errors are reported but the [Service] only logs them; the database stays
// the source of truth.
//
// The Service uses it cache-aside: a read that loads a view can Set it just
// after a concurrent delete or re-rate invalidated the key, leaving a stale
// entry until its TTL expires. CACHE_TTL bounds that window.
type ViewCache interface {
	Get(ctx context.Context, isbn int64) (*Book, bool, error)
	Set(ctx context.Context, book *Book) error
	Invalidate(ctx context.Context, isbns ...int64) error
}

// # Redis

// RedisCache is a [ViewCache] backed by Redis string keys with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache returns a cache whose entries expire after ttl.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// CacheKey is the Redis key of one book view.
func CacheKey(isbn int64) string {
	return constants.RedisPrefixBook + strconv.FormatInt(isbn, 10)
}

func (cache *RedisCache) Get(ctx context.Context, isbn int64) (*Book, bool, error) {
	payload, err := cache.client.Get(ctx, CacheKey(isbn)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %d: %w", isbn, err)
	}

	var book Book
	if err := json.Unmarshal(payload, &book); err != nil {
		return nil, false, fmt.Errorf("cache: decode %d: %w", isbn, err)
	}
	return &book, true, nil
}

func (cache *RedisCache) Set(ctx context.Context, book *Book) error {
	payload, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("cache: encode %d: %w", book.ISBN13, err)
	}

	if err := cache.client.Set(ctx, CacheKey(book.ISBN13), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %d: %w", book.ISBN13, err)
	}
	return nil
}

func (cache *RedisCache) Invalidate(ctx context.Context, isbns ...int64) error {
	if len(isbns) == 0 {
		return nil
	}

	keys := make([]string, len(isbns))
	for i, isbn := range isbns {
		keys[i] = CacheKey(isbn)
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: invalidate: %w", err)
	}
	return nil
}

// # Disabled

// NopCache is the [ViewCache] used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*Book, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, *Book) error               { return nil }
func (NopCache) Invalidate(context.Context, ...int64) error     { return nil }
