package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
)

// RateLimit 按客户端 IP 限流，每秒 r 次、突发 burst 次
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}

	get := func(k string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[k]; ok {
			return l
		}
		l := rate.NewLimiter(r, burst)
		limiters[k] = l
		return l
	}

	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			httpx.Fail(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
