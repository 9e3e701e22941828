package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationHeader 是前端与导出通知之间共享的关联 ID 头。
const CorrelationHeader = "X-Correlation-ID"

const (
	correlationIDKey    = "correlationID"
	maxCorrelationIDLen = 64
)

// CorrelationIDMiddleware 为每个请求确定 Correlation ID。
// 调用方传入的 ID 只有在是短小的 token 时才沿用，否则重新生成；
// 该 ID 会进入 pdf:export 任务载荷和 websocket 通知，前端据此认领导出结果。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := normalizeCorrelationID(c.GetHeader(CorrelationHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationHeader, id)

		c.Next()
	}
}

// normalizeCorrelationID 只接受 [A-Za-z0-9._-]，超长或含其他字符时返回空串。
func normalizeCorrelationID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxCorrelationIDLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return raw
}

// GetCorrelationID 从上下文中取出 Correlation ID。
func GetCorrelationID(c *gin.Context) string {
	if id, ok := c.Get(correlationIDKey); ok {
		s, _ := id.(string)
		return s
	}
	return ""
}
