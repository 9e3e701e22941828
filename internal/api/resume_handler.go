package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mycv/internal/api/middleware"
	"mycv/internal/database"
	"mycv/internal/printing"
	"mycv/internal/resume"
	"mycv/internal/storage"
	"mycv/internal/tasks"
	"mycv/internal/theme"
)

// ObjectStorage 是 API 对对象存储的最小依赖。
type ObjectStorage interface {
	GenerateDownloadURL(ctx context.Context, objectKey, filename string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// TaskEnqueuer 抽象 asynq.Client，便于测试。
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

const downloadLinkTTL = 5 * time.Minute

// ResumeHandler 负责简历的增删改查、打印与导出。
type ResumeHandler struct {
	db       *gorm.DB
	queue    TaskEnqueuer
	storage  ObjectStorage
	printer  *printing.Service
	counter  redisRateCounter
	logger   *slog.Logger
	maxItems int
}

// NewResumeHandler 构造 ResumeHandler。maxResumes <= 0 表示不限制数量。
func NewResumeHandler(
	db *gorm.DB,
	queue TaskEnqueuer,
	storageClient ObjectStorage,
	printer *printing.Service,
	counter redisRateCounter,
	logger *slog.Logger,
	maxResumes int,
) *ResumeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeHandler{
		db:       db,
		queue:    queue,
		storage:  storageClient,
		printer:  printer,
		counter:  counter,
		logger:   logger,
		maxItems: maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type resumeRequest struct {
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Theme      *theme.Theme    `json:"theme"`
	TemplateID string          `json:"template_id"`
}

type resumeListItem struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	TemplateID      string    `json:"template_id"`
	Status          string    `json:"status"`
	PreviewImageURL string    `json:"preview_image_url,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Content         datatypes.JSON `json:"content"`
	Theme           datatypes.JSON `json:"theme"`
	TemplateID      string         `json:"template_id"`
	Status          string         `json:"status"`
	HasPDF          bool           `json:"has_pdf"`
	PreviewImageURL string         `json:"preview_image_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CreateResume 新建简历。未提供内容时使用示例文档与默认模板。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.maxItems > 0 {
		var count int64
		if err := h.db.WithContext(ctx).
			Model(&database.Resume{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			Internal(c, "failed to count resumes")
			return
		}
		if count >= int64(h.maxItems) {
			Forbidden(c, "resume limit reached")
			return
		}
	}

	row := database.Resume{
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		TemplateID: h.printer.TemplateID(req.TemplateID),
		Status:     database.StatusDraft,
	}
	if row.Title == "" {
		row.Title = resume.SampleTitle
	}

	content, err := documentColumn(req.Content)
	if err != nil {
		InvalidDocument(c, err)
		return
	}
	row.Content = content

	themeJSON, err := themeColumn(req.Theme)
	if err != nil {
		Internal(c, "failed to encode theme")
		return
	}
	row.Theme = themeJSON

	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(row))
}

// ListResumes 列出用户全部简历，最近修改的在前。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var rows []database.Resume
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, resumeListItem{
			ID:              r.ID,
			Title:           r.Title,
			TemplateID:      r.TemplateID,
			Status:          r.Status,
			PreviewImageURL: r.PreviewImageURL,
			UpdatedAt:       r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*row))
}

// UpdateResume 整体替换简历文档；未提供的字段保持不变。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	updates := map[string]any{}
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if len(req.Content) > 0 {
		content, err := documentColumn(req.Content)
		if err != nil {
			InvalidDocument(c, err)
			return
		}
		updates["content"] = content
	}
	if req.Theme != nil {
		themeJSON, err := themeColumn(req.Theme)
		if err != nil {
			Internal(c, "failed to encode theme")
			return
		}
		updates["theme"] = themeJSON
	}
	if strings.TrimSpace(req.TemplateID) != "" {
		updates["template_id"] = h.printer.TemplateID(req.TemplateID)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, newResumeResponse(*row))
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}
	if err := h.db.WithContext(ctx).First(row, row.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*row))
}

// DeleteResume 删除简历及其导出产物。对象删除失败只记录日志。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, row.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	log := middleware.LoggerFromContext(c).With(slog.Uint64("resume_id", uint64(row.ID)))
	if row.PdfUrl != "" {
		if err := h.storage.DeleteObject(ctx, row.PdfUrl); err != nil {
			log.Warn("delete exported pdf failed", slog.String("object_key", row.PdfUrl), slog.Any("error", err))
		}
	}
	if err := h.storage.DeletePrefix(ctx, storage.PreviewPrefix(row.ID)); err != nil {
		log.Warn("delete preview failed", slog.Any("error", err))
	}

	c.Status(http.StatusNoContent)
}

// PrintResume 返回可直接打印的 HTML 文档。
func (h *ResumeHandler) PrintResume(c *gin.Context) {
	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	premium, err := database.IsPremium(ctx, h.db, row.UserID)
	if err != nil {
		Internal(c, "failed to load profile")
		return
	}

	job, err := printing.FromResume(*row, premium)
	if err != nil {
		middleware.LoggerFromContext(c).Error("decode stored resume failed", slog.Any("error", err))
		Internal(c, "failed to decode resume")
		return
	}
	middleware.SetTemplate(c, h.printer.TemplateID(job.TemplateID))

	html, err := h.printer.HTML(job)
	if err != nil {
		middleware.LoggerFromContext(c).Error("render resume failed", slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ExportResume 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	limited, err := exportLimit.exceeded(ctx, h.counter, row.UserID)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("export rate counter unavailable", slog.Any("error", err))
	}
	if limited {
		TooManyRequests(c, "export limit reached, try again later")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(row.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.queue.Enqueue(task)
	if err != nil {
		middleware.LoggerFromContext(c).Error("enqueue pdf export failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pdf export")
		return
	}

	if err := h.db.WithContext(ctx).Model(row).Update("status", database.StatusPending).Error; err != nil {
		middleware.LoggerFromContext(c).Warn("mark resume pending failed", slog.Any("error", err))
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成最近一次导出 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	row, ok := h.resumeFromRequest(c)
	if !ok {
		return
	}

	if row.PdfUrl == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GenerateDownloadURL(c.Request.Context(), row.PdfUrl, downloadFilename(row.Title), downloadLinkTTL)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// resumeFromRequest 读取当前用户的 :id 简历，失败时已写入响应。
func (h *ResumeHandler) resumeFromRequest(c *gin.Context) (*database.Resume, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}

	row, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidResumeID):
			BadRequest(c, "invalid resume id")
		case errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "resume not found")
		default:
			Internal(c, "failed to query resume")
		}
		return nil, false
	}
	return row, true
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID string) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || resumeID == 0 {
		return nil, errInvalidResumeID
	}

	var row database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uint(resumeID), userID).
		First(&row).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

// documentColumn 校验客户端提交的文档；为空时返回示例文档。
func documentColumn(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		data, err := json.Marshal(resume.Sample())
		if err != nil {
			return nil, fmt.Errorf("encode sample document: %w", err)
		}
		return datatypes.JSON(data), nil
	}
	if err := resume.Validate(raw); err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func themeColumn(th *theme.Theme) (datatypes.JSON, error) {
	value := theme.Default()
	if th != nil {
		value = *th
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func downloadFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "resume"
	}
	return title + ".pdf"
}

func newResumeResponse(row database.Resume) resumeResponse {
	return resumeResponse{
		ID:              row.ID,
		Title:           row.Title,
		Content:         row.Content,
		Theme:           row.Theme,
		TemplateID:      row.TemplateID,
		Status:          row.Status,
		HasPDF:          row.PdfUrl != "",
		PreviewImageURL: row.PreviewImageURL,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
