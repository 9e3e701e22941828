package api

import (
	"bytes"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/dutchcoders/go-clamd"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"mycv/internal/api/middleware"
)

const (
	maxPhotoBytes     = 500 * 1024
	photoFormField    = "file"
	photoResponseName = "image"
)

var photoMIMEWhitelist = []string{"image/png", "image/jpeg", "image/webp"}

// AssetHandler 处理头像上传：大小与类型校验、可选的病毒扫描，
// 返回可直接写入 basics.image 的 data URI。图片随文档保存，不落对象存储。
type AssetHandler struct {
	Logger    *slog.Logger
	ClamdAddr string
	Counter   redisRateCounter
	MaxBytes  int64
}

// NewAssetHandler 返回 AssetHandler 实例。clamdAddr 为空时跳过扫描。
func NewAssetHandler(logger *slog.Logger, clamdAddr string, counter redisRateCounter) *AssetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetHandler{
		Logger:    logger,
		ClamdAddr: clamdAddr,
		Counter:   counter,
		MaxBytes:  maxPhotoBytes,
	}
}

// UploadPhoto 处理 multipart 头像上传。
func (h *AssetHandler) UploadPhoto(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile(photoFormField)
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > h.MaxBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	ctx := c.Request.Context()
	limited, err := uploadLimit.exceeded(ctx, h.Counter, userID)
	if err != nil {
		h.Logger.Warn("upload rate counter unavailable", slog.Any("error", err))
	}
	if limited {
		TooManyRequests(c, "daily upload limit reached")
		return
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	data, err := io.ReadAll(io.LimitReader(reader, h.MaxBytes+1))
	reader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	if int64(len(data)) > h.MaxBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), photoMIMEWhitelist...) {
		Error(c, http.StatusUnsupportedMediaType, "unsupported image type")
		return
	}

	if h.ClamdAddr != "" {
		clean, err := h.scan(data)
		if err != nil {
			h.Logger.Error("scan file", slog.String("error", err.Error()))
			Internal(c, "failed to scan file")
			return
		}
		if !clean {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		photoResponseName: dataURI(detected.String(), data),
		"content_type":    detected.String(),
		"size":            len(data),
	})
}

func (h *AssetHandler) scan(data []byte) (bool, error) {
	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamd.NewClamd(h.ClamdAddr).ScanStream(bytes.NewReader(data), abortChan)
	if err != nil {
		return false, err
	}

	clean := true
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			clean = false
		}
	}
	return clean, nil
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
