package app

import (
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/domain"
)

// SessionEvent is the bus payload for SessionChangeTopic.
type SessionEvent struct {
	Username string
	Event    string // login | logout
	At       time.Time
}

// subscribeSessionEvents keeps operator last-login current from the
// session-change stream instead of coupling the login handler to the
// operators table.
func (a *Application) subscribeSessionEvents() {
	err := a.bus.Subscribe(SessionChangeTopic, func(ev SessionEvent) {
		if ev.Event != "login" {
			return
		}
		if err := a.gormDB.Model(&domain.SysOpr{}).
			Where("username = ?", ev.Username).
			Update("last_login", ev.At).Error; err != nil {
			zap.L().Error("failed to stamp operator last login",
				zap.String("username", ev.Username), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Error("session event subscription failed", zap.Error(err))
	}
}

// storedImageName extracts the bucket object name out of a public
// image URL, or returns "" for external and relative URLs.
func storedImageName(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	idx := strings.LastIndex(imageURL, "/")
	if idx < 0 {
		return ""
	}
	name, err := url.PathUnescape(imageURL[idx+1:])
	if err != nil {
		return ""
	}
	return name
}
