package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc 限流维度，返回空字符串时不限流
type KeyFunc func(c *gin.Context) string

// ByUser 按当前登录用户限流，未登录时退回按 IP
func ByUser(c *gin.Context) string {
	if id := GetCurrentUserID(c); id != 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return "ip:" + c.ClientIP()
}

// ByIP 按客户端 IP 限流
func ByIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// RateLimit 滑动窗口限流：同一 key 在 window 内最多 maxRequests 次，超过返回 429
// 只对写请求计数，GET/HEAD/OPTIONS 直接放行
func RateLimit(maxRequests int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu    sync.Mutex
		store = make(map[string]*entry)
	)
	prune := func(e *entry, cutoff time.Time) {
		kept := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		e.timestamps = kept
	}
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for k, e := range store {
				prune(e, cutoff)
				if len(e.timestamps) == 0 {
					delete(store, k)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		now := time.Now()
		mu.Lock()
		e, ok := store[k]
		if !ok {
			e = &entry{}
			store[k] = e
		}
		prune(e, now.Add(-window))
		if len(e.timestamps) >= maxRequests {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"success": false,
				"error":   "TooManyRequests",
				"message": "操作过于频繁，请稍后再试",
			})
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}
