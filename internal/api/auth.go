package api

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"

	"shareit/internal/config"

	"golang.org/x/time/rate"
)

// HTTPAuth provides API-key auth and per-key rate limiting.
type HTTPAuth struct {
	auth      config.AuthConfig
	rateLimit config.RateLimitConfig
	clients   map[string]config.APIClientKey
	limiters  sync.Map // map[string]*rate.Limiter
}

func NewHTTPAuth(auth config.AuthConfig, rateLimit config.RateLimitConfig) *HTTPAuth {
	m := make(map[string]config.APIClientKey, len(auth.APIKeys))
	for _, k := range auth.APIKeys {
		m[k.Key] = k
	}
	return &HTTPAuth{auth: auth, rateLimit: rateLimit, clients: m}
}

func (a *HTTPAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.auth.Enabled {
			if err := a.checkAuth(r); err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
		}

		if err := a.checkRateLimit(r); err != nil {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *HTTPAuth) checkAuth(r *http.Request) error {
	apiKey := strings.TrimSpace(r.Header.Get(a.headerName()))
	if apiKey == "" {
		return errMissingAPIKey
	}

	// Constant-time scan over the configured keys so an attacker cannot
	// distinguish near-misses by timing.
	var matched bool
	for key := range a.clients {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			matched = true
		}
	}
	if !matched {
		return errInvalidAPIKey
	}
	return nil
}

var (
	errMissingAPIKey = &authError{"missing api key header"}
	errInvalidAPIKey = &authError{"invalid api key"}
)

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

func (a *HTTPAuth) checkRateLimit(r *http.Request) error {
	if a.rateLimit.RPS <= 0 {
		return nil
	}

	lim := a.getLimiter(a.clientKey(r))
	if !lim.Allow() {
		return &authError{"rate limit exceeded"}
	}
	return nil
}

func (a *HTTPAuth) clientKey(r *http.Request) string {
	if apiKey := strings.TrimSpace(r.Header.Get(a.headerName())); apiKey != "" {
		return apiKey
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

func (a *HTTPAuth) headerName() string {
	header := strings.TrimSpace(strings.ToLower(a.auth.HeaderAPIKey))
	if header == "" {
		header = "x-api-key"
	}
	return header
}

func (a *HTTPAuth) getLimiter(key string) *rate.Limiter {
	if v, ok := a.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := a.rateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(a.rateLimit.RPS), burst)
	actual, loaded := a.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
