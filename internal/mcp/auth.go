package mcp

import (
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trademind/internal/ratelimit"
)

const defaultMCPMaxBodyBytes int64 = 1 << 20

type HTTPHandlerConfig struct {
	AuthToken       string
	RateLimitPerMin int
	MaxBodyBytes    int64
	Logger          *zap.Logger
}

// httpGuard fronts the streamable transport. Checks run in order: bearer
// token, per-client rate, then the body cap on whatever reaches the SDK.
type httpGuard struct {
	next    http.Handler
	token   []byte
	limiter *ratelimit.Keyed
	log     *zap.Logger
}

func wrapHTTPHandler(base http.Handler, cfg HTTPHandlerConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &httpGuard{
		next:    withBodyLimit(base, cfg.MaxBodyBytes),
		token:   []byte(cfg.AuthToken),
		limiter: ratelimit.NewKeyed(cfg.RateLimitPerMin),
		log:     log,
	}
}

func (g *httpGuard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	provided, ok := bearerToken(r)
	if !ok {
		g.reject(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if len(g.token) == 0 || subtle.ConstantTimeCompare([]byte(provided), g.token) != 1 {
		g.reject(w, r, http.StatusForbidden, "invalid bearer token")
		return
	}
	if !g.limiter.Allow(rateLimitKey(r)) {
		g.reject(w, r, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	g.next.ServeHTTP(w, r)
}

func (g *httpGuard) reject(w http.ResponseWriter, r *http.Request, status int, message string) {
	g.log.Warn("mcp http request rejected",
		zap.Int("status", status),
		zap.String("reason", message),
		zap.String("remote", clientHost(r)),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// bearerToken returns the token from "Authorization: Bearer <token>". A
// header without the scheme or with an empty token is reported as absent.
func bearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	token, found := strings.CutPrefix(authz, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func withBodyLimit(next http.Handler, limit int64) http.Handler {
	if limit <= 0 {
		limit = defaultMCPMaxBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitKey buckets by token and host so clients sharing a token behind
// different addresses do not starve each other.
func rateLimitKey(r *http.Request) string {
	host := clientHost(r)
	if token, ok := bearerToken(r); ok {
		return token + "|" + host
	}
	return host
}

func clientHost(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return "unknown"
	}
	return addr
}
