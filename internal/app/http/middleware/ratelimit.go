package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const maxTrackedOwners = 10000

// RateLimitPerOwner applies a token bucket per authenticated owner. Buckets of
// owners not seen for a while are evicted once maxTrackedOwners is reached.
// A non-positive rps disables the limit.
func RateLimitPerOwner(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedOwners)
	var mu sync.Mutex

	return func(c *gin.Context) {
		owner := Owner(c)
		mu.Lock()
		lim, ok := limiters.Get(owner)
		if !ok {
			lim = rate.NewLimiter(rate.Limit(rps), burst)
			limiters.Add(owner, lim)
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again later"})
			return
		}
		c.Next()
	}
}
