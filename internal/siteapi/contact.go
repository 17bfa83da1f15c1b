package siteapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/telegram"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

func registerContactRoutes() {
	webserver.PubPOST("/contact", submitContact)
	webserver.PubPOST("/telegram-bot-info", getTelegramBotInfo)
}

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

// submitContact stores the submission and relays it to the Telegram
// chat. The relay is single attempt: on failure the row keeps its
// pending status and the visitor is told delivery failed.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse submission", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Phone == "" || payload.Message == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name, phone and message are required", nil)
	}

	msg := domain.ContactMessage{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Phone:       payload.Phone,
		Message:     payload.Message,
		RelayStatus: "pending",
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store submission", nil)
	}

	text := telegram.FormatContactMessage(payload.Name, payload.Phone, payload.Message)
	if err := appctx.Relay().SendMessage(text); err != nil {
		zap.L().Error("contact relay failed", zap.Int64("id", msg.ID), zap.Error(err))
		return fail(c, http.StatusBadGateway, "RELAY_ERROR", "Submission stored, delivery failed", nil)
	}

	GetDB(c).Model(&domain.ContactMessage{}).
		Where("id = ?", msg.ID).
		Updates(map[string]interface{}{"relay_status": "sent", "updated_at": time.Now()})

	return ok(c, echo.Map{"id": msg.ID})
}

// getTelegramBotInfo proxies getMe so the contacts page can show the
// bot activation link without ever seeing the bot token.
func getTelegramBotInfo(c echo.Context) error {
	info, err := appctx.Relay().GetBotInfo()
	if err != nil {
		return fail(c, http.StatusBadGateway, "RELAY_ERROR", "Bot info unavailable", nil)
	}
	return ok(c, echo.Map{"bot_info": info})
}
