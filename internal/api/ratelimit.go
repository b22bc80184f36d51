package api

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ──────────────────────────────────────────────────────────────────────
// Cost-Weighted Token Bucket Rate Limiter
//
// Unlike a flat per-request limiter, each request here withdraws a
// weight proportional to the search it is about to trigger rather than
// a constant 1 token: spec.md §5 observes that the iterative-deepening
// frontier grows combinatorially with requested depth (its own worked
// example goes from a handful of seeds to ~95k depth-2 candidates), so
// a client allowed to fire ten depth-1 explorations per minute should
// not also be allowed to fire ten depth-4 ones — the latter is orders
// of magnitude more solver work. ExplorationWeight turns a requested
// depth into that withdrawal amount; callers outside /v1/explore still
// withdraw a flat weight of 1 via Allow.
//
// A background goroutine evicts buckets idle past evictAfter so
// long-running clients don't grow the bucket map without bound.
// ──────────────────────────────────────────────────────────────────────

const evictAfter = 10 * time.Minute

// ExplorationWeight converts a requested iterative-deepening depth into
// the token cost an explore request withdraws from its caller's bucket.
// Cost doubles per additional depth level, mirroring the frontier's
// combinatorial growth; depth <= 1 withdraws a single token.
func ExplorationWeight(depth int) float64 {
	if depth <= 1 {
		return 1
	}
	return math.Exp2(float64(depth - 1))
}

type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// RateLimiter hands out a weighted token bucket per caller identity
// (bearer token when present, else client IP).
type RateLimiter struct {
	mu       sync.Mutex
	fillRate float64 // tokens added per second
	capacity float64 // bucket capacity
	buckets  map[string]*tokenBucket
}

// NewRateLimiter builds a limiter refilling at ratePerMin tokens per
// minute per caller, capped at a bucket capacity of burst tokens.
func NewRateLimiter(ratePerMin, burst int) *RateLimiter {
	rl := &RateLimiter{
		fillRate: float64(ratePerMin) / 60.0,
		capacity: float64(burst),
		buckets:  make(map[string]*tokenBucket),
	}
	go rl.evictIdleLoop()
	return rl
}

// Allow withdraws a single token for key, reporting whether the
// withdrawal succeeded and, if not, how long until it would.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	return rl.withdraw(key, 1)
}

// withdraw attempts to take weight tokens from key's bucket, refilling
// it for elapsed time first.
func (rl *RateLimiter) withdraw(key string, weight float64) (bool, time.Duration) {
	rl.mu.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: rl.capacity}
		rl.buckets[key] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	if !bucket.lastSeen.IsZero() {
		bucket.tokens += now.Sub(bucket.lastSeen).Seconds() * rl.fillRate
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
	}
	bucket.lastSeen = now

	if bucket.tokens >= weight {
		bucket.tokens -= weight
		return true, 0
	}

	shortfall := weight - bucket.tokens
	retryAfter := time.Duration(shortfall/rl.fillRate*1000) * time.Millisecond
	return false, retryAfter
}

// callerKey identifies the caller a bucket is tracked under: the bearer
// token when the request carries one (so a shared client behind NAT
// isn't penalized for its neighbors), otherwise the client IP.
func callerKey(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); len(auth) > len("Bearer ") {
		return "token:" + auth[len("Bearer "):]
	}
	return "ip:" + c.ClientIP()
}

// Middleware enforces a flat 1-token withdrawal per request.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return rl.weightedMiddleware(func(*gin.Context) float64 { return 1 })
}

// WeightedMiddleware enforces a withdrawal sized by weightOf, which may
// inspect the request (already bound by an earlier handler, or re-read
// from a buffered body) to size the cost of what the caller is about to
// trigger.
func (rl *RateLimiter) WeightedMiddleware(weightOf func(*gin.Context) float64) gin.HandlerFunc {
	return rl.weightedMiddleware(weightOf)
}

func (rl *RateLimiter) weightedMiddleware(weightOf func(*gin.Context) float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := callerKey(c)
		weight := weightOf(c)
		allowed, retryAfter := rl.withdraw(key, weight)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "rate limit exceeded",
				"retryAfter": retryAfter.String(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// evictIdleLoop drops buckets that haven't been touched in evictAfter,
// bounding memory use across long daemon uptimes.
func (rl *RateLimiter) evictIdleLoop() {
	ticker := time.NewTicker(evictAfter)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-evictAfter)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			b.mu.Lock()
			idle := b.lastSeen.Before(cutoff)
			b.mu.Unlock()
			if idle {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
