package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incredible-trails/trips-service/internal/helper"
	"github.com/incredible-trails/trips-service/internal/metrics"
	"github.com/incredible-trails/trips-service/internal/security"
)

const (
	RequestIDKey = "X-Request-ID"
	authUserKey  = "authUser"
)

// AuthUser is the verified claim attached to the gin context after the
// bearer gate passes.
type AuthUser struct {
	ID    string
	Email string
}

// CurrentUser returns the claim AuthJWT attached, if any.
func CurrentUser(c *gin.Context) (AuthUser, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return AuthUser{}, false
	}
	au, ok := v.(AuthUser)
	return au, ok
}

// RequestID trusts an inbound X-Request-ID and mints one otherwise; the
// ID is echoed back and stamped on published events.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDKey, id)
		c.Next()
	}
}

// AuthJWT rejects requests without a valid bearer token before any
// handler runs. All failure kinds answer the same 401; the distinction
// lives only in logs and metrics.
func AuthJWT(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			metrics.AuthFailures.WithLabelValues("missing_bearer").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			metrics.AuthFailures.WithLabelValues(authFailReason(err)).Inc()
			logger.Debug("token rejected",
				zap.Error(err),
				zap.String("token_fp", helper.Hash8(tok)),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(authUserKey, AuthUser{ID: claims.UID, Email: claims.Email})
		c.Next()
	}
}

func authFailReason(err error) string {
	switch err {
	case security.ErrTokenExpired:
		return "expired"
	case security.ErrTokenMalformed:
		return "malformed"
	case security.ErrBadSignature:
		return "bad_signature"
	default:
		return "invalid"
	}
}

// Limiter is the rate-limit backend; *repo.Redis satisfies it.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit throttles an endpoint per client IP over a one-minute window.
// A nil limiter or a backend error fails open: losing redis must not take
// login down with it.
func RateLimit(l Limiter, perMin int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || perMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + c.FullPath() + ":" + ClientIP(c)
		ok, err := l.Allow(c.Request.Context(), key, perMin, time.Minute)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}

// Metrics records the prometheus request vectors around each handler.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// RequestLogger writes one zap line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
	}
}
