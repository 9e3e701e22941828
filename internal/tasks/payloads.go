package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFExport = "pdf:export"
)

// PDFExportPayload 描述导出 PDF 所需的最小信息。
type PDFExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask 构造一个新的简历 PDF 导出任务。
func NewPDFExportTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload, asynq.MaxRetry(3)), nil
}

// ParsePDFExportPayload decodes a task payload.
func ParsePDFExportPayload(data []byte) (PDFExportPayload, error) {
	var p PDFExportPayload
	err := json.Unmarshal(data, &p)
	return p, err
}

// NotifyChannel 返回用户通知所用的 Redis 频道名。
// worker 发布、API 的 WebSocket 订阅，两端必须一致。
func NotifyChannel(userID string) string {
	return "user_notify:" + userID
}
