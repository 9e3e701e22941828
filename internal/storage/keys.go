package storage

import (
	"fmt"

	"github.com/google/uuid"
)

// 对象 key 布局：
//
//	generated-resumes/<user>/<uuid>.pdf   每次导出一个新对象，旧对象由 worker 删除
//	thumbnails/resume/<id>/preview.jpg    每份简历最多一张预览图
const (
	pdfRoot     = "generated-resumes/"
	previewRoot = "thumbnails/resume/"
)

// NewPDFKey returns a fresh object key for an export of userID's resume.
func NewPDFKey(userID string) string {
	return fmt.Sprintf("%s%s/%s.pdf", pdfRoot, userID, uuid.NewString())
}

// PreviewPrefix covers every preview object of a resume.
func PreviewPrefix(resumeID uint) string {
	return fmt.Sprintf("%s%d/", previewRoot, resumeID)
}

// PreviewKey is the JPEG thumbnail of a resume's latest export.
func PreviewKey(resumeID uint) string {
	return PreviewPrefix(resumeID) + "preview.jpg"
}
