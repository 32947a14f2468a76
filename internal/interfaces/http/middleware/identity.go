// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"

	"z-novel-blueprint-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// IdentityContextKey 身份上下文 Key 类型
type IdentityContextKey string

// UserIDKey 用户 ID 上下文 Key
const UserIDKey IdentityContextKey = "user_id"

// Identity 身份传播中间件
// 将认证后的用户 ID 注入 request context 与日志上下文，供下游使用
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID != "" {
			ctx := context.WithValue(c.Request.Context(), UserIDKey, userID)
			ctx = logger.WithContext(ctx, logger.UserIDKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// GetUserID 从 context 中获取用户 ID
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
