package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/petalforge/grovetender/internal/logger"
)

// AbuseGuardConfig tunes the per-IP abuse thresholds for the API surface.
type AbuseGuardConfig struct {
	// FailedAuthAlert is the number of failed authentications per window
	// after which an alert is logged for the offending IP.
	FailedAuthAlert int
	// RequestLimit is the number of requests per window after which an
	// IP is throttled with 429.
	RequestLimit int
	// Window is the counting window; all per-IP counters reset when it
	// elapses.
	Window time.Duration
}

// DefaultAbuseGuardConfig returns the production thresholds.
func DefaultAbuseGuardConfig() AbuseGuardConfig {
	return AbuseGuardConfig{
		FailedAuthAlert: 5,
		RequestLimit:    1000,
		Window:          5 * time.Minute,
	}
}

// ipActivity holds one client's counters for the current window.
type ipActivity struct {
	failedAuth int
	requests   int
}

// AbuseGuard tracks per-IP activity across the farm, garden and shop
// endpoints and throttles clients that exceed the configured limits.
type AbuseGuard struct {
	mu          sync.Mutex
	cfg         AbuseGuardConfig
	byIP        map[string]*ipActivity
	windowStart time.Time
}

func NewAbuseGuard(cfg AbuseGuardConfig) *AbuseGuard {
	return &AbuseGuard{
		cfg:         cfg,
		byIP:        make(map[string]*ipActivity),
		windowStart: time.Now(),
	}
}

// activity returns the counters for ip in the current window, rolling
// the window first if it has elapsed. Caller must hold the mutex.
func (g *AbuseGuard) activity(ip string) *ipActivity {
	if time.Since(g.windowStart) > g.cfg.Window {
		g.byIP = make(map[string]*ipActivity)
		g.windowStart = time.Now()
	}
	act, ok := g.byIP[ip]
	if !ok {
		act = &ipActivity{}
		g.byIP[ip] = act
	}
	return act
}

// RecordFailedAuth counts a failed authentication attempt and alerts
// once the per-window threshold is reached.
func (g *AbuseGuard) RecordFailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	act := g.activity(ip)
	act.failedAuth++

	if act.failedAuth >= g.cfg.FailedAuthAlert {
		slog.Warn(AlertMsgRepeatedAuthFailures,
			"ip", ip,
			"count", act.failedAuth)
	}
}

// Allow counts a request and reports whether the client is still under
// the per-window request limit.
func (g *AbuseGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	act := g.activity(ip)
	act.requests++

	if act.requests > g.cfg.RequestLimit {
		// Log every 100th overflow request to keep a throttled
		// client from flooding the log.
		if act.requests%100 == 0 {
			slog.Warn(AlertMsgThrottlingClient,
				"ip", ip,
				"requests_in_window", act.requests)
		}
		return false
	}
	return true
}

// AuthMiddleware validates the API key on every request except those
// whose path starts with one of the exempt prefixes.
func AuthMiddleware(apiKey string, exempt []string, trustedProxies []string, guard *AbuseGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range exempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Constant time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				guard.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
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

// RateLimitMiddleware rejects requests from clients that have exceeded
// the guard's per-window request limit.
func RateLimitMiddleware(trustedProxies []string, guard *AbuseGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(clientIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
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

// clientIP resolves the client address for a request. X-Forwarded-For
// is honored only when the direct peer is a trusted proxy, and then
// only its rightmost entry, since that is the hop the proxy itself saw.
func clientIP(r *http.Request, trustedProxies []string) string {
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
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range headers {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
