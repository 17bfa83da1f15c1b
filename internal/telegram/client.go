package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/config"
)

// Client talks to the Telegram Bot API for the contact-form relay.
// The bot token and recipient chat id live in server config; they are
// never accepted from the browser.
type Client struct {
	apiBase string
	token   string
	chatID  string
	timeout time.Duration
}

// BotInfo is the subset of getMe the contacts page links with.
type BotInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"first_name"`
}

type apiEnvelope struct {
	OK          bool    `json:"ok"`
	Description string  `json:"description"`
	Result      BotInfo `json:"result"`
}

func NewClient(cfg *config.AppConfig) *Client {
	return &Client{
		apiBase: strings.TrimRight(cfg.Telegram.APIBaseURL, "/"),
		token:   cfg.Telegram.BotToken,
		chatID:  cfg.Telegram.ChatID,
		timeout: 10 * time.Second,
	}
}

// Configured reports whether relay credentials are present. An
// unconfigured relay is not an error: submissions are still stored.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

// FormatContactMessage renders a submission the way the chat expects.
func FormatContactMessage(name, phone, message string) string {
	return fmt.Sprintf("📨 New request from website:\n👤 Name: %s\n📞 Phone: %s\n💬 Message: %s",
		name, phone, message)
}

// SendMessage relays text to the configured chat. Single attempt, no
// retries: a failed relay is logged by the caller and the stored row
// keeps its pending status.
func (c *Client) SendMessage(text string) error {
	if !c.Configured() {
		return errors.New("telegram relay is not configured")
	}
	var resp apiEnvelope
	err := gout.POST(fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)).
		SetTimeout(c.timeout).
		SetJSON(gout.H{
			"chat_id": c.chatID,
			"text":    text,
		}).
		BindJSON(&resp).
		Do()
	if err != nil {
		return errors.Wrap(err, "telegram sendMessage")
	}
	if !resp.OK {
		return errors.Errorf("telegram sendMessage rejected: %s", resp.Description)
	}
	return nil
}

// GetBotInfo calls getMe so the contacts page can render the bot
// activation link.
func (c *Client) GetBotInfo() (*BotInfo, error) {
	if c.token == "" {
		return nil, errors.New("telegram bot token is not configured")
	}
	var resp apiEnvelope
	err := gout.GET(fmt.Sprintf("%s/bot%s/getMe", c.apiBase, c.token)).
		SetTimeout(c.timeout).
		BindJSON(&resp).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "telegram getMe")
	}
	if !resp.OK {
		return nil, errors.Errorf("telegram getMe rejected: %s", resp.Description)
	}
	zap.L().Debug("telegram bot info fetched", zap.String("username", resp.Result.Username))
	return &resp.Result, nil
}
