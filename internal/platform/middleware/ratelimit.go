// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
)

// clientLimiters holds one token bucket per client IP.
type clientLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientBucket),
	}
}

// reserve takes a token for ip. When none is available it returns how long
// the client should wait.
func (limiters *clientLimiters) reserve(ip string, now time.Time) (time.Duration, bool) {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	bucket, found := limiters.clients[ip]
	if !found {
		bucket = &clientBucket{limiter: rate.NewLimiter(limiters.limit, limiters.burst)}
		limiters.clients[ip] = bucket
	}
	bucket.lastSeen = now

	if bucket.limiter.AllowN(now, 1) {
		return 0, true
	}

	reservation := bucket.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return constants.RateLimitCleanupInterval, false
	}
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return delay, false
}

// sweep forgets clients idle for longer than ttl.
func (limiters *clientLimiters) sweep(now time.Time, ttl time.Duration) {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	for ip, bucket := range limiters.clients {
		if now.Sub(bucket.lastSeen) > ttl {
			delete(limiters.clients, ip)
		}
	}
}

func (limiters *clientLimiters) size() int {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()
	return len(limiters.clients)
}

// RateLimit throttles each client IP with a token bucket of rps and burst.
// Rejected requests get 429 and a Retry-After header.
//
// The idle-client sweeper stops when ctx is cancelled.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	limiters := newClientLimiters(rps, burst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiters.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			wait, allowed := limiters.reserve(RealIP(request), time.Now())
			if !allowed {
				retryAfter := max(1, int(math.Ceil(wait.Seconds())))
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
