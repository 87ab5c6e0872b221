package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noon/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// CORSMiddleware handles CORS for browser clients
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks the origin against exact entries and "prefix*" wildcards
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs one structured line per request
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	log := logger.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start),
			"client_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("request completed with errors")
			return
		}
		entry.Info("request completed")
	}
}

// RecoveryMiddleware turns panics into a logged 500
func RecoveryMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	log := logger.WithField("component", "http")
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
	})
}

const (
	maxTrackedClients = 10000
	clientIdleTimeout = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP
type ipRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	maxClients int
	limit      rate.Limit
	burst      int
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		clients:    make(map[string]*clientLimiter),
		maxClients: maxTrackedClients,
		limit:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      perMinute,
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evictIdle(now)
		}
		if len(l.clients) >= l.maxClients {
			l.evictOldest()
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) evictIdle(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > clientIdleTimeout {
			delete(l.clients, ip)
		}
	}
}

// evictOldest drops the least recently seen client
func (l *ipRateLimiter) evictOldest() {
	var (
		oldestIP string
		oldest   time.Time
		found    bool
	)
	for ip, cl := range l.clients {
		if !found || cl.lastSeen.Before(oldest) {
			oldestIP, oldest, found = ip, cl.lastSeen, true
		}
	}
	if found {
		delete(l.clients, oldestIP)
	}
}

// RateLimitMiddleware allows perMinute requests per client IP, answering 429
// beyond that. perMinute <= 0 disables limiting.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(perMinute)
	retryAfter := strconv.Itoa(int(math.Ceil(60 / float64(perMinute))))

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": domain.ErrRateLimited.Error(),
			})
			return
		}
		c.Next()
	}
}
