package middleware

import (
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/storefront/shop-api/internal/api/metrics"
)

const defaultLimiterSize = 10_000

// IPRateLimiter keeps one token bucket per client IP. The least recently
// seen IPs are evicted once size buckets exist.
type IPRateLimiter struct {
	limit   rate.Limit
	burst   int
	buckets *lru.Cache[string, *rate.Limiter]
}

func NewIPRateLimiter(rps float64, burst, size int) (*IPRateLimiter, error) {
	if size <= 0 {
		size = defaultLimiterSize
	}
	if burst <= 0 {
		burst = 1
	}
	buckets, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	return &IPRateLimiter{limit: rate.Limit(rps), burst: burst, buckets: buckets}, nil
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	if b, ok := l.buckets.Get(ip); ok {
		return b
	}
	b := rate.NewLimiter(l.limit, l.burst)
	if prev, ok, _ := l.buckets.PeekOrAdd(ip, b); ok {
		return prev
	}
	return b
}

// Middleware rejects requests with 429 once the caller's bucket is empty.
func (l *IPRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.limiter(c.RealIP()).Allow() {
				metrics.RateLimitedTotal.Inc()
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, rejection{Message: "too many requests"})
			}
			return next(c)
		}
	}
}
