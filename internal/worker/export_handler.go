package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"mycv/internal/database"
	"mycv/internal/errcode"
	"mycv/internal/export"
	"mycv/internal/metrics"
	"mycv/internal/printing"
	"mycv/internal/storage"
	"mycv/internal/tasks"
)

const previewPresignTTL = 7 * 24 * time.Hour

// ObjectStorage 是 worker 对对象存储的最小依赖。
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// ExportTaskHandler 消费 pdf:export 任务：渲染、打印、上传并通知。
type ExportTaskHandler struct {
	db       *gorm.DB
	storage  ObjectStorage
	notifier Notifier
	exporter export.Exporter
	printer  *printing.Service
	driver   string
	logger   *slog.Logger

	finalAttempt func(context.Context) bool
}

// NewExportTaskHandler 创建任务处理器。driver 仅用于指标标签。
func NewExportTaskHandler(
	db *gorm.DB,
	storage ObjectStorage,
	notifier Notifier,
	exporter export.Exporter,
	printer *printing.Service,
	driver string,
	logger *slog.Logger,
) *ExportTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportTaskHandler{
		db:           db,
		storage:      storage,
		notifier:     notifier,
		exporter:     exporter,
		printer:      printer,
		driver:       driver,
		logger:       logger,
		finalAttempt: isFinalAsynqAttempt,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	payload, err := tasks.ParsePDFExportPayload(t.Payload())
	if err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting pdf export task")

	var row database.Resume
	if err := h.db.WithContext(ctx).First(&row, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.String("user_id", row.UserID))

	defer func() {
		if retErr == nil {
			return
		}
		if !errors.Is(retErr, asynq.SkipRetry) && !h.finalAttempt(ctx) {
			return
		}
		h.fail(ctx, log, row, payload.CorrelationID, retErr)
	}()

	premium, err := database.IsPremium(ctx, h.db, row.UserID)
	if err != nil {
		log.Error("query profile failed", slog.Any("error", err))
		return err
	}

	job, err := printing.FromResume(row, premium)
	if err != nil {
		log.Error("decode stored resume failed", slog.Any("error", err))
		return &documentError{err: err}
	}

	html, err := h.printer.HTML(job)
	if err != nil {
		log.Error("render resume failed", slog.Any("error", err))
		return err
	}

	start := time.Now()
	result, err := h.exporter.Export(ctx, html, export.DefaultPreviewQuality)
	metrics.ObserveExport(h.driver, err, time.Since(start))
	if err != nil {
		log.Error("export pdf failed", slog.Any("error", err))
		return err
	}

	objectName := storage.NewPDFKey(row.UserID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(result.PDF), int64(len(result.PDF)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	previous := row.PdfUrl
	if err := h.db.WithContext(ctx).Model(&row).Updates(map[string]any{
		"pdf_url": objectName,
		"status":  database.StatusCompleted,
	}).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}
	if previous != "" && previous != objectName {
		if err := h.storage.DeleteObject(ctx, previous); err != nil {
			log.Warn("delete previous pdf failed", slog.String("object_key", previous), slog.Any("error", err))
		}
	}

	notify := ExportNotifyMessage{
		Status:        NotifyCompleted,
		ResumeID:      row.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if len(result.Preview) > 0 {
		previewURL, err := h.storePreview(ctx, &row, result.Preview)
		if err != nil {
			log.Warn("store resume preview failed", slog.Any("error", err))
		}
		notify.PreviewImageURL = previewURL
	}

	if err := h.notifier.Notify(ctx, row.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
	}

	log.Info("pdf export task completed", slog.Int("pdf_bytes", len(result.PDF)))
	return nil
}

func (h *ExportTaskHandler) storePreview(ctx context.Context, row *database.Resume, preview []byte) (string, error) {
	objectName := storage.PreviewKey(row.ID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(preview), int64(len(preview)), "image/jpeg"); err != nil {
		return "", fmt.Errorf("upload preview image: %w", err)
	}

	presignedURL, err := h.storage.GeneratePresignedURL(ctx, objectName, previewPresignTTL)
	if err != nil {
		return "", fmt.Errorf("generate preview presigned url: %w", err)
	}

	if err := h.db.WithContext(ctx).Model(row).Update("preview_image_url", presignedURL).Error; err != nil {
		return "", fmt.Errorf("update resume preview url: %w", err)
	}
	return presignedURL, nil
}

// fail 在不再重试时标记失败并通知用户。通知只携带错误码对应的提示，
// 具体原因只写日志。
func (h *ExportTaskHandler) fail(ctx context.Context, log *slog.Logger, row database.Resume, correlationID string, cause error) {
	log.Error("pdf export task failed permanently", slog.Any("error", cause))
	if err := h.db.WithContext(ctx).Model(&row).Update("status", database.StatusFailed).Error; err != nil {
		log.Error("mark resume failed", slog.Any("error", err))
	}

	code := errcode.SystemError
	var docErr *documentError
	if errors.As(cause, &docErr) {
		code = errcode.InvalidDocument
	}
	notify := ExportNotifyMessage{
		Status:        NotifyError,
		ResumeID:      row.ID,
		CorrelationID: correlationID,
		ErrorCode:     code,
		ErrorMessage:  code.Message(),
		Retryable:     code.Retryable(),
	}
	if err := h.notifier.Notify(ctx, row.UserID, notify); err != nil {
		log.Error("publish pdf error notification failed", slog.Any("error", err))
	}
}

// documentError 表示存储的文档无法解码，重试没有意义。
type documentError struct {
	err error
}

func (e *documentError) Error() string { return e.err.Error() }

func (e *documentError) Unwrap() []error { return []error{e.err, asynq.SkipRetry} }

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
