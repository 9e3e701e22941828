package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mycv/internal/errcode"
	"mycv/internal/tasks"
)

// 导出通知状态。
const (
	NotifyCompleted = "completed"
	NotifyError     = "error"
)

// ExportNotifyMessage 是通过 Redis Pub/Sub 转发给前端 WebSocket 的消息。
// 注意：这里的字段名与前端解析保持一致。
type ExportNotifyMessage struct {
	Status          string `json:"status"`
	ResumeID        uint   `json:"resume_id"`
	CorrelationID   string `json:"correlation_id"`
	PreviewImageURL string `json:"preview_image_url,omitempty"`
	ErrorCode       errcode.Code `json:"error_code"`
	ErrorMessage    string       `json:"error_message"`
	// Retryable 提示前端是否展示重新导出的入口。
	Retryable bool `json:"retryable,omitempty"`
}

// Notifier 把导出结果推送给用户。
type Notifier interface {
	Notify(ctx context.Context, userID string, msg ExportNotifyMessage) error
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier 发布到 tasks.NotifyChannel(userID)。
type RedisNotifier struct {
	client publisher
}

func NewRedisNotifier(client publisher) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Notify(ctx context.Context, userID string, msg ExportNotifyMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := tasks.NotifyChannel(userID)
	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}
