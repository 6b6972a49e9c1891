package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
)

// RateLimit limita por IP de cliente: perMinute requests con ráfaga burst.
// perMinute <= 0 desactiva el límite.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	lim := newIPLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())/perMinute+1))
				httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.Envelope{Message: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterIdleTTL: un limiter sin uso por este tiempo ya volvió a tener la
// ráfaga completa, así que se puede descartar sin cambiar el resultado.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(every rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		every:    every,
		burst:    burst,
		limiters: map[string]*limiterEntry{},
		now:      time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}

	e, ok := l.limiters[ip]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

// sweep descarta limiters inactivos. Llamar con mu tomado.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, e := range l.limiters {
		if now.Sub(e.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

// clientIP usa RemoteAddr. Solo detrás de un proxy confiable el router
// monta chimw.RealIP, que lo reescribe desde X-Forwarded-For / X-Real-IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
