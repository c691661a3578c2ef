package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultPerMin = 60

// Keyed hands out one token bucket per key (client address, token). The
// bucket refills at perMin/60 tokens a second and holds up to perMin.
type Keyed struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
	now     func() time.Time
}

func NewKeyed(perMin int) *Keyed {
	if perMin <= 0 {
		perMin = defaultPerMin
	}
	return &Keyed{
		limit:   rate.Limit(float64(perMin) / 60.0),
		burst:   perMin,
		buckets: make(map[string]*rate.Limiter),
		now:     time.Now,
	}
}

func (k *Keyed) Allow(key string) bool {
	if k == nil {
		return true
	}
	if key == "" {
		key = "default"
	}

	k.mu.Lock()
	l, ok := k.buckets[key]
	if !ok {
		l = rate.NewLimiter(k.limit, k.burst)
		k.buckets[key] = l
	}
	k.mu.Unlock()

	return l.AllowN(k.now(), 1)
}
