package siteapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran-montage/cranweb/config"
	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/siteapi"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

func setupSite(t *testing.T, mutate func(cfg *config.AppConfig)) *app.Application {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Database = config.DBConfig{Type: "sqlite", Name: "cranweb_test"}
	cfg.Logger = config.LogConfig{Mode: "development"}
	cfg.Telegram.BotToken = ""
	cfg.Telegram.ChatID = ""
	if mutate != nil {
		mutate(&cfg)
	}
	application := app.NewApplication(&cfg)
	application.Init(&cfg)
	t.Cleanup(application.Release)
	webserver.Init(application)
	siteapi.InitRouter(application)
	return application
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	webserver.Instance().Echo().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	webserver.Instance().Echo().ServeHTTP(rec, req)
	return rec
}

func TestAboutPageDefaults(t *testing.T) {
	setupSite(t, nil)
	rec := get(t, "/api/about")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "История компании")
	assert.Contains(t, body, "Наши ценности и приоритеты")
	assert.Contains(t, body, "Профессионализм")
}

func TestAboutPageComposesBlocks(t *testing.T) {
	application := setupSite(t, nil)
	db := application.DB()
	require.NoError(t, db.Create(&domain.AboutBlock{
		ID: common.UUIDint64(), BlockKey: "company_history", Title: "Наша история",
		Content: "since 2008", Sort: 1, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&domain.AboutBlock{
		ID: common.UUIDint64(), BlockKey: "quality_first", Title: "Качество",
		Content: "ISO", Sort: 2, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&domain.AboutBlock{
		ID: common.UUIDint64(), BlockKey: "hidden", Title: "Скрытый блок",
		Sort: 3, IsActive: false,
	}).Error)

	rec := get(t, "/api/about")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Наша история")
	assert.Contains(t, body, "Качество")
	assert.NotContains(t, body, "Скрытый блок")
}

func TestCatalogCategoryFilter(t *testing.T) {
	application := setupSite(t, nil)
	db := application.DB()
	cat := domain.Category{ID: common.UUIDint64(), Name: "Краны"}
	require.NoError(t, db.Create(&cat).Error)
	other := domain.Category{ID: common.UUIDint64(), Name: "Прочее"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&domain.Product{
		ID: common.UUIDint64(), Title: "Кран 5т", CategoryID: &cat.ID,
	}).Error)
	require.NoError(t, db.Create(&domain.Product{
		ID: common.UUIDint64(), Title: "Таль", CategoryID: &other.ID,
	}).Error)

	rec := get(t, "/api/catalog?category="+formatID(cat.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data  []map[string]interface{} `json:"data"`
		Total int64                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Кран 5т", page.Data[0]["title"])
	assert.Equal(t, "Краны", page.Data[0]["category_name"])

	// unknown category is an empty page, not an error
	rec = get(t, "/api/catalog?category=999999")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Data)

	rec = get(t, "/api/catalog?category=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogItemNotFound(t *testing.T) {
	setupSite(t, nil)
	rec := get(t, "/api/catalog/123456")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestWorksFallbackWhenEmpty(t *testing.T) {
	setupSite(t, nil)
	rec := get(t, "/api/works")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	// known early-deployment fallback media
	assert.Contains(t, body, "0u9dq5fzmlad_1748104138382.mp4")
	assert.Contains(t, body, `"photos"`)
}

func TestWorksListsActiveMedia(t *testing.T) {
	application := setupSite(t, nil)
	db := application.DB()
	require.NoError(t, db.Create(&domain.Video{
		ID: common.UUIDint64(), Title: "Монтаж крана", VideoType: domain.VideoTypeYouTube,
		YouTubeID: "dQw4w9WgXcQ", IsActive: true, Sort: 1,
	}).Error)

	rec := get(t, "/api/works")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "youtube.com/embed/dQw4w9WgXcQ")
}

func TestHomeBundle(t *testing.T) {
	application := setupSite(t, nil)
	db := application.DB()
	require.NoError(t, db.Create(&domain.CmsService{
		ID: common.UUIDint64(), Name: "Монтаж",
	}).Error)

	rec := get(t, "/api/home")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "КРАН-МОНТАЖ") // seeded SiteTitle
	assert.Contains(t, body, "Монтаж")
	// default counters apply when no stats block exists
	assert.Contains(t, body, `"projects":500`)
}

// Stats rows from the old admin carry no section_role and are recognized
// by their keyword key alone. The home bundle must pick those up too.
func TestHomeBundleLegacyStatsBlock(t *testing.T) {
	application := setupSite(t, nil)
	require.NoError(t, application.DB().Create(&domain.AboutBlock{
		ID:       common.UUIDint64(),
		BlockKey: "статистика",
		IsActive: true,
		Metadata: domain.JSONMap{"projects": 123},
	}).Error)

	rec := get(t, "/api/home")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"projects":123`)
}

func TestContactValidation(t *testing.T) {
	setupSite(t, nil)
	rec := postJSON(t, "/api/contact", `{"name":"","phone":"","message":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactStoredWhenRelayUnconfigured(t *testing.T) {
	application := setupSite(t, nil)
	rec := postJSON(t, "/api/contact",
		`{"name":"Иван","phone":"+79000000000","message":"Нужен кран"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "RELAY_ERROR")

	var msg domain.ContactMessage
	require.NoError(t, application.DB().Where("name = ?", "Иван").First(&msg).Error)
	assert.Equal(t, "pending", msg.RelayStatus)
}

func TestContactRelayedWhenConfigured(t *testing.T) {
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer tg.Close()

	application := setupSite(t, func(cfg *config.AppConfig) {
		cfg.Telegram.APIBaseURL = tg.URL
		cfg.Telegram.BotToken = "123:abc"
		cfg.Telegram.ChatID = "-100"
	})

	rec := postJSON(t, "/api/contact",
		`{"name":"Иван","phone":"+79000000000","message":"Нужен кран"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var msg domain.ContactMessage
	require.NoError(t, application.DB().Where("name = ?", "Иван").First(&msg).Error)
	assert.Equal(t, "sent", msg.RelayStatus)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
