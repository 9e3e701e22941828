package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 简历导出状态。
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SubscriptionActive 为付费订阅生效时的状态值。
const SubscriptionActive = "active"

// Resume 表示用户保存的简历文档及其最近一次导出结果。
// UserID 为外部身份服务签发令牌中的 sub。
type Resume struct {
	gorm.Model
	UserID          string         `gorm:"index;size:64"`
	Title           string         `gorm:"size:255"`
	Content         datatypes.JSON `gorm:"type:jsonb"` // resume.Document
	Theme           datatypes.JSON `gorm:"type:jsonb"` // theme.Theme
	TemplateID      string         `gorm:"size:16"`
	PdfUrl          string         `gorm:"size:512"` // 对象存储中的 key，而非公开链接
	PreviewImageURL string         `gorm:"size:512"`
	Status          string         `gorm:"size:32"`
}

// Profile 对应身份服务侧的用户资料，仅读取订阅状态与点数。
type Profile struct {
	ID                 string `gorm:"primaryKey;size:64"`
	SubscriptionStatus string `gorm:"size:32"`
	Credits            int
}

// IsPremium reports whether branding should be suppressed for this user.
func (p Profile) IsPremium() bool {
	return p.SubscriptionStatus == SubscriptionActive
}

// Models lists every table AutoMigrate manages.
func Models() []any {
	return []any{&Resume{}, &Profile{}}
}
