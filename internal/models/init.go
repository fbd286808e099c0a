package models

import (
	"strings"

	"github.com/forkful/forkful/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultStaff 初始化默认店长账号
func InitDefaultStaff(username, password string) error {
	var count int64
	DB.Model(&Staff{}).Count(&count)

	// 如果已有员工，确保默认 manager 拥有店长权限
	if count > 0 {
		if err := DB.Model(&Staff{}).Where("username = ?", "manager").Update("is_manager", true).Error; err != nil {
			logger.Warnw("ensure_default_manager_failed", "error", err)
		}
		return nil
	}

	// 创建默认店长
	if username == "" {
		username = "manager"
	}
	if password == "" {
		password = "manager123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := Staff{
		Username:     username,
		PasswordHash: string(hash),
		IsManager:    strings.EqualFold(strings.TrimSpace(username), "manager"),
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "manager123" {
		logger.Warnw("default_staff_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_staff_password_change_required", "username", username)
	} else {
		logger.Warnw("default_staff_created", "username", username, "password_hidden", true)
	}

	return nil
}
