package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowsUpToBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)
	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("1.2.3.4")
		if !allowed {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	allowed, retryAfter := rl.Allow("1.2.3.4")
	if allowed {
		t.Fatal("request beyond burst should be denied")
	}
	if retryAfter <= 0 {
		t.Error("expected a positive retry-after duration")
	}
}

func TestRateLimiterTracksKeysIndependently(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	allowedA, _ := rl.Allow("1.1.1.1")
	allowedB, _ := rl.Allow("2.2.2.2")
	if !allowedA || !allowedB {
		t.Error("distinct keys should not share a bucket")
	}
}

func TestExplorationWeightGrowsWithDepth(t *testing.T) {
	if w := ExplorationWeight(1); w != 1 {
		t.Errorf("ExplorationWeight(1) = %v, want 1", w)
	}
	if w := ExplorationWeight(0); w != 1 {
		t.Errorf("ExplorationWeight(0) = %v, want 1 (floor)", w)
	}
	w2, w4 := ExplorationWeight(2), ExplorationWeight(4)
	if w2 <= 1 {
		t.Errorf("ExplorationWeight(2) = %v, want > 1", w2)
	}
	if w4 <= w2 {
		t.Errorf("ExplorationWeight(4) = %v, want > ExplorationWeight(2) = %v", w4, w2)
	}
}

func TestRateLimiterWithdrawConsumesWeight(t *testing.T) {
	rl := NewRateLimiter(60, 4)
	allowed, _ := rl.withdraw("k", 4)
	if !allowed {
		t.Fatal("a withdrawal equal to full capacity should be allowed")
	}
	allowed, retryAfter := rl.withdraw("k", 1)
	if allowed {
		t.Fatal("bucket should be empty after a full-capacity withdrawal")
	}
	if retryAfter <= 0 {
		t.Error("expected a positive retry-after duration")
	}
}

func TestRateLimiterMiddlewareReturns429WhenExhausted(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	engine := newRateLimitedEngine(rl)

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w1.Code)
	}

	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req)
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w2.Code)
	}
}

func TestRateLimiterMiddlewareKeysOnBearerTokenOverIP(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	engine := newRateLimitedEngine(rl)

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w1.Code)
	}

	// Same bearer token, different remote address: should share the bucket.
	req2 := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req2.Header.Set("Authorization", "Bearer abc")
	req2.RemoteAddr = "9.9.9.9:1234"
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("same bearer token from a different IP should share the bucket: status = %d, want 429", w2.Code)
	}
}

func newRateLimitedEngine(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.GET("/limited", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}
