package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// IsPremium 查询用户订阅状态；没有资料行的用户按免费用户处理。
func IsPremium(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	var profile Profile
	err := db.WithContext(ctx).
		Select("id", "subscription_status").
		Where("id = ?", userID).
		First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return profile.IsPremium(), nil
	}
}
