package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const superEmail = "admin@cran-montage.ru"
	const defaultPassword = "cranweb"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     superEmail,
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings are created once; operators may edit them afterwards.
var defaultSettings = []domain.SysConfig{
	{Type: "site", Name: "SiteTitle", Value: "КРАН-МОНТАЖ", Remark: "Public site title"},
	{Type: "site", Name: "SitePhone", Value: "+7 (900) 000-00-00", Remark: "Contact phone shown in the footer"},
	{Type: "site", Name: "SiteEmail", Value: "info@cran-montage.ru", Remark: "Contact email shown in the footer"},
	{Type: "media", Name: "GallerySortDefault", Value: "sort_order", Remark: "Default works-page ordering"},
}

func (a *Application) checkSettings() {
	for _, s := range defaultSettings {
		var existing domain.SysConfig
		err := a.gormDB.Where("type = ? and name = ?", s.Type, s.Name).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		s.ID = common.UUIDint64()
		if err := a.gormDB.Create(&s).Error; err != nil {
			zap.L().Error("failed to seed setting", zap.String("name", s.Name), zap.Error(err))
		}
	}
}
