package termsite

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// fakeClock returns a limiter whose time only moves when advanced.
func fakeClock(l *RateLimiter) func(time.Duration) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Close()
	fakeClock(limiter)
	ip := "203.0.113.10"

	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected first request to be allowed")
	}
	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected second request to be allowed")
	}
	ok, retry := limiter.Allow(ip)
	if ok {
		t.Fatalf("expected third request to be blocked")
	}
	if retry != time.Minute {
		t.Errorf("retry = %v, want 1m", retry)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Close()
	advance := fakeClock(limiter)
	ip := "203.0.113.20"

	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected first request to be allowed")
	}
	advance(30 * time.Second)
	ok, retry := limiter.Allow(ip)
	if ok {
		t.Fatalf("expected second request to be blocked")
	}
	if retry != 30*time.Second {
		t.Errorf("retry = %v, want 30s", retry)
	}

	advance(31 * time.Second)
	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected request after window to be allowed")
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Close()
	fakeClock(limiter)

	if ok, _ := limiter.Allow("203.0.113.30"); !ok {
		t.Fatalf("expected first ip to be allowed")
	}
	if ok, _ := limiter.Allow("203.0.113.31"); !ok {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if ok, _ := limiter.Allow("203.0.113.30"); ok {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Close()
	fakeClock(limiter)

	e := echo.New()
	e.GET("/api/posts", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, limiter.Middleware)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.RemoteAddr = "203.0.113.40:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}
	if rec := do(); rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimiterCloseTwice(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Close()
	limiter.Close()
}
