package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// trackedClients bounds the memory spent on per-client buckets. The least
// recently seen client loses its bucket first.
const trackedClients = 4096

// ClientLimiter hands out one token bucket per client IP.
type ClientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients *lru.Cache[string, *rate.Limiter]
}

func NewClientLimiter(rps float64, burst int) (*ClientLimiter, error) {
	clients, err := lru.New[string, *rate.Limiter](trackedClients)
	if err != nil {
		return nil, err
	}
	return &ClientLimiter{limit: rate.Limit(rps), burst: burst, clients: clients}, nil
}

func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	limiter, ok := l.clients.Get(client)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients.Add(client, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimit rejects a client with 429 once its bucket is empty. A nil limiter
// disables throttling.
func RateLimit(limiter *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":          "rate limit exceeded",
				"correlation_id": GetCorrelationID(c),
			})
			return
		}
		c.Next()
	}
}
