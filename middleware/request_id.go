package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求 ID 头，客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配 ID，写入上下文与响应头，日志里用它串联同一请求
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 当前请求 ID，未经过 RequestID 中间件时为 "-"
func GetRequestID(c *gin.Context) string {
	if id := c.GetString("requestID"); id != "" {
		return id
	}
	return "-"
}
