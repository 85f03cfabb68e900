package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_PerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id == "1" {
			c.Set(ContextUserID, uint(1))
		} else {
			c.Set(ContextUserID, uint(2))
		}
		c.Next()
	})
	router.Use(RateLimit(2, 200*time.Millisecond, ByUser))
	router.POST("/transactions", func(c *gin.Context) { c.String(200, "ok") })
	router.GET("/transactions", func(c *gin.Context) { c.String(200, "ok") })

	doReq := func(method, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/transactions", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, 200, doReq("POST", "1").Code)
	assert.Equal(t, 200, doReq("POST", "1").Code)
	w3 := doReq("POST", "1")
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "频繁")

	// 读请求不计数
	assert.Equal(t, 200, doReq("GET", "1").Code)

	// 不同用户互不影响
	assert.Equal(t, 200, doReq("POST", "2").Code)
	assert.Equal(t, 200, doReq("POST", "2").Code)

	// 窗口过后恢复
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 200, doReq("POST", "1").Code)
}

func TestRateLimit_ByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(1, time.Minute, ByIP))
	router.DELETE("/wallets/1", func(c *gin.Context) { c.String(200, "ok") })

	doReq := func(ip string) int {
		req := httptest.NewRequest("DELETE", "/wallets/1", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, 200, doReq("192.168.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, doReq("192.168.1.1"))
	assert.Equal(t, 200, doReq("192.168.1.2"))
}
