package adminapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran-montage/cranweb/config"
	"github.com/cran-montage/cranweb/internal/adminapi"
	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

type adminEnv struct {
	app   *app.Application
	token string
}

func setupAdmin(t *testing.T, mutate func(cfg *config.AppConfig)) *adminEnv {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Database = config.DBConfig{Type: "sqlite", Name: "cranweb_test"}
	cfg.Logger = config.LogConfig{Mode: "development"}
	cfg.Telegram.BotToken = ""
	if mutate != nil {
		mutate(&cfg)
	}
	application := app.NewApplication(&cfg)
	application.Init(&cfg)
	t.Cleanup(application.Release)
	webserver.Init(application)
	adminapi.InitRouter(application)

	login := request(t, http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"cranweb"}`), "application/json", "")
	require.Equal(t, http.StatusOK, login.Code, login.Body.String())
	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)
	return &adminEnv{app: application, token: env.Data.Token}
}

func request(t *testing.T, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	webserver.Instance().Echo().ServeHTTP(rec, req)
	return rec
}

func (e *adminEnv) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	return request(t, method, path, strings.NewReader(body), "application/json", e.token)
}

func dataField(t *testing.T, body []byte, key string) interface{} {
	t.Helper()
	var env struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data[key]
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	setupAdmin(t, nil)
	rec := request(t, http.MethodGet, "/api/admin/categories", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCategoryCRUD(t *testing.T) {
	env := setupAdmin(t, nil)

	created := env.doJSON(t, http.MethodPost, "/api/admin/categories", `{"name":"Краны"}`)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	id, _ := dataField(t, created.Body.Bytes(), "id").(string)
	require.NotEmpty(t, id)

	rec := env.doJSON(t, http.MethodPost, "/api/admin/categories", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/admin/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Краны")

	rec = env.doJSON(t, http.MethodPut, "/api/admin/categories/"+id, `{"name":"Мостовые краны"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Мостовые краны")

	rec = env.doJSON(t, http.MethodDelete, "/api/admin/categories/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.app.DB().Model(&domain.Category{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestProductCreateValidatesCategory(t *testing.T) {
	env := setupAdmin(t, nil)
	rec := env.doJSON(t, http.MethodPost, "/api/admin/products",
		`{"title":"Кран","category_id":"999999"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category does not exist")
}

func TestProductCRUDWithCharacteristics(t *testing.T) {
	env := setupAdmin(t, nil)

	created := env.doJSON(t, http.MethodPost, "/api/admin/products",
		`{"title":"Кран мостовой","price":"по запросу","characteristics":{"Грузоподъемность":"5 т"}}`)
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	id, _ := dataField(t, created.Body.Bytes(), "id").(string)
	require.NotEmpty(t, id)

	rec := env.doJSON(t, http.MethodGet, "/api/admin/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Грузоподъемность")

	rec = env.doJSON(t, http.MethodGet, "/api/admin/products?q=мостовой", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Кран мостовой")

	rec = env.doJSON(t, http.MethodPut, "/api/admin/products/"+id, `{"title":"Кран козловой"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, "/api/admin/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAboutBlockConflictOnDuplicateKey(t *testing.T) {
	env := setupAdmin(t, nil)

	rec := env.doJSON(t, http.MethodPost, "/api/admin/about-blocks",
		`{"block_key":"mission","title":"Миссия"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSON(t, http.MethodPost, "/api/admin/about-blocks",
		`{"block_key":"mission","title":"Дубль"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFLICT")

	// nothing was written for the rejected duplicate
	var count int64
	require.NoError(t, env.app.DB().Model(&domain.AboutBlock{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAboutBlockValidation(t *testing.T) {
	env := setupAdmin(t, nil)
	rec := env.doJSON(t, http.MethodPost, "/api/admin/about-blocks", `{"block_key":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/admin/about-blocks",
		`{"block_key":"x","section_role":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown section role")
}

func TestAboutBlockToggle(t *testing.T) {
	env := setupAdmin(t, nil)
	created := env.doJSON(t, http.MethodPost, "/api/admin/about-blocks",
		`{"block_key":"history","title":"История"}`)
	require.Equal(t, http.StatusOK, created.Code)
	id, _ := dataField(t, created.Body.Bytes(), "id").(string)

	rec := env.doJSON(t, http.MethodPut, "/api/admin/about-blocks/"+id+"/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)

	rec = env.doJSON(t, http.MethodPut, "/api/admin/about-blocks/"+id+"/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":true`)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestPhotoUploadAndDelete(t *testing.T) {
	env := setupAdmin(t, nil)

	body, ctype := multipartBody(t, map[string]string{"title": "Объект"}, "file", "site.jpg", []byte("jpegdata"))
	rec := request(t, http.MethodPost, "/api/admin/photos", body, ctype, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id, _ := dataField(t, rec.Body.Bytes(), "id").(string)
	filename, _ := dataField(t, rec.Body.Bytes(), "filename").(string)
	require.NotEmpty(t, filename)
	assert.True(t, strings.HasSuffix(filename, ".jpg"))

	names, err := env.app.Storage().List("products_img")
	require.NoError(t, err)
	assert.Contains(t, names, filename)

	rec = env.doJSON(t, http.MethodDelete, "/api/admin/photos/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage_removed":true`)

	names, err = env.app.Storage().List("products_img")
	require.NoError(t, err)
	assert.NotContains(t, names, filename)
}

func TestPhotoUploadTooLarge(t *testing.T) {
	env := setupAdmin(t, func(cfg *config.AppConfig) {
		cfg.Storage.MaxImageSize = 8
	})
	body, ctype := multipartBody(t, nil, "file", "big.jpg", bytes.Repeat([]byte("x"), 64))
	rec := request(t, http.MethodPost, "/api/admin/photos", body, ctype, env.token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPLOAD_TOO_LARGE")

	// the rejected upload left nothing behind
	names, err := env.app.Storage().List("products_img")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestVideoFromYouTubeURL(t *testing.T) {
	env := setupAdmin(t, nil)
	body, ctype := multipartBody(t, map[string]string{
		"video_type": "youtube",
		"title":      "Монтаж",
		"video_url":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, "", "", nil)
	rec := request(t, http.MethodPost, "/api/admin/videos", body, ctype, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"youtube_id":"dQw4w9WgXcQ"`)
	assert.Contains(t, rec.Body.String(), `"filename":"youtube_dQw4w9WgXcQ"`)
}

func TestVideoRejectsBadYouTubeURL(t *testing.T) {
	env := setupAdmin(t, nil)
	body, ctype := multipartBody(t, map[string]string{
		"video_type": "youtube",
		"video_url":  "https://example.com/notyoutube",
	}, "", "", nil)
	rec := request(t, http.MethodPost, "/api/admin/videos", body, ctype, env.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoFileUploadAndDelete(t *testing.T) {
	env := setupAdmin(t, nil)
	body, ctype := multipartBody(t, map[string]string{
		"video_type": "file",
		"title":      "Обзор",
	}, "file", "clip.mp4", []byte("mp4data"))
	rec := request(t, http.MethodPost, "/api/admin/videos", body, ctype, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id, _ := dataField(t, rec.Body.Bytes(), "id").(string)
	filename, _ := dataField(t, rec.Body.Bytes(), "filename").(string)

	names, err := env.app.Storage().List("video")
	require.NoError(t, err)
	assert.Contains(t, names, filename)

	rec = env.doJSON(t, http.MethodDelete, "/api/admin/videos/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage_removed":true`)
}

func TestContactsListAndExport(t *testing.T) {
	env := setupAdmin(t, nil)
	require.NoError(t, env.app.DB().Create(&domain.ContactMessage{
		ID: 1001, Name: "Иван", Phone: "+79000000000", Message: "Нужен кран",
	}).Error)

	rec := env.doJSON(t, http.MethodGet, "/api/admin/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Иван")

	rec = env.doJSON(t, http.MethodGet, "/api/admin/contacts/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = env.doJSON(t, http.MethodDelete, "/api/admin/contacts/1001", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSettingsUpsert(t *testing.T) {
	env := setupAdmin(t, nil)

	rec := env.doJSON(t, http.MethodPut, "/api/admin/settings",
		`{"type":"site","name":"SitePhone","value":"+7 (111) 222-33-44"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "+7 (111) 222-33-44",
		env.app.GetSettingsStringValue("site", "SitePhone"))

	rec = env.doJSON(t, http.MethodPut, "/api/admin/settings", `{"type":"","name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardCounts(t *testing.T) {
	env := setupAdmin(t, nil)
	require.NoError(t, env.app.DB().Create(&domain.Category{ID: 1, Name: "Краны"}).Error)

	rec := env.doJSON(t, http.MethodGet, "/api/admin/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var env2 struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env2))
	assert.EqualValues(t, 1, env2.Data["categories"])
	assert.EqualValues(t, 0, env2.Data["products"])
}

func TestOprLogRecordsLogin(t *testing.T) {
	env := setupAdmin(t, nil)
	rec := env.doJSON(t, http.MethodGet, "/api/admin/oprlogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"opt_action":%q`, "login"))
}
