// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/catalog"
)

/*
TestCacheKey namespaces keys under the catalog prefix.
*/
func TestCacheKey(t *testing.T) {
	assert.Equal(t, "catalog:book:9780439023480", catalog.CacheKey(9780439023480))
	assert.Equal(t, "catalog:book:7", catalog.CacheKey(7))
}

/*
TestNopCache always misses and never fails.
*/
func TestNopCache(t *testing.T) {
	ctx := context.Background()
	cache := catalog.NopCache{}

	book, ok, err := cache.Get(ctx, 1)
	assert.Nil(t, book)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.NoError(t, cache.Set(ctx, &catalog.Book{ISBN13: 1}))
	assert.NoError(t, cache.Invalidate(ctx, 1, 2))
}

/*
TestRedisCache_Unreachable surfaces errors that the service only logs.
*/
func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cache := catalog.NewRedisCache(client, time.Minute)
	ctx := context.Background()

	_, _, err := cache.Get(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, &catalog.Book{ISBN13: 1}))
	assert.NoError(t, cache.Invalidate(ctx))

	service := newTestService(newMemRepo(), catalog.Options{Cache: cache})
	mustCreate(t, service, newInput(1, "Uncached", "A", 3))

	got, err := service.GetByISBN(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Uncached", got.Title)
}
