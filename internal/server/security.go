package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/NemoBot_Go/internal/logger"
)

// AuthMiddleware requires the X-API-Key header to match apiKey on every
// non-public path.
func AuthMiddleware(apiKey string, trustedProxies []string, tracker *ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				tracker.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type ipWindow struct {
	start time.Time
	count int
}

// ActivityTracker counts requests and failed authentications per client IP
// in fixed windows. Idle IPs age out of a bounded LRU.
type ActivityTracker struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	now        func() time.Time
	requests   *expirable.LRU[string, ipWindow]
	failedAuth *expirable.LRU[string, ipWindow]
}

// NewActivityTracker allows limit requests per IP per window. Non-positive
// arguments select the defaults.
func NewActivityTracker(limit int, window time.Duration) *ActivityTracker {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &ActivityTracker{
		limit:      limit,
		window:     window,
		now:        time.Now,
		requests:   expirable.NewLRU[string, ipWindow](maxTrackedIPs, nil, window),
		failedAuth: expirable.NewLRU[string, ipWindow](maxTrackedIPs, nil, window),
	}
}

// bump increments ip's counter in c, starting a new window when the old one
// has passed. Caller must hold the mutex.
func (t *ActivityTracker) bump(c *expirable.LRU[string, ipWindow], ip string) int {
	now := t.now()
	w, ok := c.Get(ip)
	if !ok || now.Sub(w.start) >= t.window {
		w = ipWindow{start: now}
	}
	w.count++
	c.Add(ip, w)
	return w.count
}

// RecordFailedAuth records a failed authentication attempt
func (t *ActivityTracker) RecordFailedAuth(ip string) {
	t.mu.Lock()
	count := t.bump(t.failedAuth, ip)
	t.mu.Unlock()

	if count >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// Allow records a request and reports whether ip is still within its limit.
func (t *ActivityTracker) Allow(ip string) bool {
	t.mu.Lock()
	count := t.bump(t.requests, ip)
	t.mu.Unlock()

	if count <= t.limit {
		return true
	}
	// One line per hundred rejected requests.
	if (count-t.limit)%100 == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// RateLimitMiddleware rejects clients that exceed the tracker's limit
func RateLimitMiddleware(trustedProxies []string, tracker *ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tracker.Allow(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request. X-Forwarded-For is only
// honoured when the direct peer is a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}

	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop our proxy saw.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
