package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran-montage/cranweb/config"
)

func testClient(apiBase string) *Client {
	cfg := *config.DefaultAppConfig
	cfg.Telegram.APIBaseURL = apiBase
	cfg.Telegram.BotToken = "123:token"
	cfg.Telegram.ChatID = "575698739"
	return NewClient(&cfg)
}

func TestFormatContactMessage(t *testing.T) {
	got := FormatContactMessage("Иван", "+7 900 000-00-00", "Нужен кран")
	assert.Contains(t, got, "👤 Name: Иван")
	assert.Contains(t, got, "📞 Phone: +7 900 000-00-00")
	assert.Contains(t, got, "💬 Message: Нужен кран")
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	require.NoError(t, c.SendMessage("hello"))
	assert.Equal(t, "/bot123:token/sendMessage", gotPath)
	assert.Equal(t, "575698739", gotBody["chat_id"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestSendMessage_APIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendMessage("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_Unconfigured(t *testing.T) {
	cfg := *config.DefaultAppConfig
	c := NewClient(&cfg)
	assert.False(t, c.Configured())
	assert.Error(t, c.SendMessage("hello"))
}

func TestGetBotInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:token/getMe", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":7,"username":"cranmontaj_bot","first_name":"CranBot"}}`))
	}))
	defer srv.Close()

	info, err := testClient(srv.URL).GetBotInfo()
	require.NoError(t, err)
	assert.Equal(t, "cranmontaj_bot", info.Username)
	assert.Equal(t, int64(7), info.ID)
}
