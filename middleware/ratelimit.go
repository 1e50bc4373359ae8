package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// attempts 单个客户端在窗口内的请求时间
type attempts []time.Time

// since 保留 cutoff 之后的记录，复用底层数组
func (a attempts) since(cutoff time.Time) attempts {
	kept := a[:0]
	for _, t := range a {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 登录、注册接口限流中间件
// 每个 IP 在 window 内最多 maxAttempts 次请求，超过返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu    sync.Mutex
		store = make(map[string]attempts)
	)

	// 定期清理长时间没有请求的 IP
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-window)
			mu.Lock()
			for ip, a := range store {
				if kept := a.since(cutoff); len(kept) == 0 {
					delete(store, ip)
				} else {
					store[ip] = kept
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		a := store[ip].since(now.Add(-window))
		if len(a) >= maxAttempts {
			store[ip] = a
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		store[ip] = append(a, now)
		mu.Unlock()

		c.Next()
	}
}
