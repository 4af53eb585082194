package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"salonpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// rateEntry is one client's token bucket.
type rateEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiter holds one map per RateLimiter instance so routes can have their own budgets.
type limiter struct {
	every  rate.Limit
	burst  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*rateEntry
}

// RateLimiter allows limit requests per window per client IP, refilled evenly.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter(limit, window)
	go l.purgeLoop(5 * time.Minute)
	return l.handle
}

func newLimiter(limit int, window time.Duration) *limiter {
	return &limiter{
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
		entries: make(map[string]*rateEntry),
	}
}

func (l *limiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &rateEntry{lim: rate.NewLimiter(l.every, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.lim
}

func (l *limiter) handle(c *gin.Context) {
	if !l.get(c.ClientIP(), time.Now()).Allow() {
		wait := time.Duration(float64(time.Second) / float64(l.every))
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
		return
	}
	c.Next()
}

// purgeLoop drops idle clients so IPs that never come back do not pile up.
func (l *limiter) purgeLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		l.purge(time.Now())
	}
}

// purge removes clients idle for longer than a full window; their bucket is full again anyway.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.window {
			delete(l.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter purged")
	}
	return purged
}
