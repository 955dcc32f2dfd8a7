package bot

import (
	"sync"

	"golang.org/x/time/rate"
)

// userLimiter holds one token bucket per Telegram user
type userLimiter struct {
	limit    rate.Limit
	burst    int
	limiters map[int64]*rate.Limiter
	mu       sync.Mutex
}

func newUserLimiter(perSecond float64, burst int) *userLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &userLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[int64]*rate.Limiter),
	}
}

// Allow reports whether the user may be served now. A nil limiter allows everything.
func (l *userLimiter) Allow(userID int64) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	limiter, exists := l.limiters[userID]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
