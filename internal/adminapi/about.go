package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/cms"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

type aboutBlockPayload struct {
	BlockKey    string         `json:"block_key" form:"block_key"`
	SectionRole string         `json:"section_role" form:"section_role"`
	Title       string         `json:"title" form:"title"`
	Content     string         `json:"content" form:"content"`
	ImageURL    string         `json:"image_url" form:"image_url"`
	Icon        string         `json:"icon" form:"icon"`
	Sort        int            `json:"sort" form:"sort"`
	IsActive    *bool          `json:"is_active" form:"is_active"`
	Metadata    domain.JSONMap `json:"metadata"`
}

func registerAboutRoutes() {
	webserver.ApiGET("/about-blocks", listAboutBlocks)
	webserver.ApiGET("/about-blocks/:id", getAboutBlock)
	webserver.ApiPOST("/about-blocks", createAboutBlock)
	webserver.ApiPUT("/about-blocks/:id", updateAboutBlock)
	webserver.ApiPUT("/about-blocks/:id/active", toggleAboutBlock)
	webserver.ApiDELETE("/about-blocks/:id", deleteAboutBlock)
}

func listAboutBlocks(c echo.Context) error {
	var rows []domain.AboutBlock
	if err := GetDB(c).Order("sort asc, id asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query content blocks", err.Error())
	}
	// annotate each block with the role the public page will use
	type blockWithRole struct {
		domain.AboutBlock
		ResolvedRole string `json:"resolved_role"`
	}
	out := make([]blockWithRole, 0, len(rows))
	for i := range rows {
		out = append(out, blockWithRole{
			AboutBlock:   rows[i],
			ResolvedRole: string(cms.Classify(&rows[i])),
		})
	}
	return ok(c, out)
}

func getAboutBlock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}
	var row domain.AboutBlock
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Content block not found", nil)
	}
	return ok(c, row)
}

func validateAboutPayload(payload *aboutBlockPayload) string {
	payload.BlockKey = strings.TrimSpace(payload.BlockKey)
	payload.SectionRole = strings.TrimSpace(strings.ToLower(payload.SectionRole))
	if payload.BlockKey == "" {
		return "Block key is required"
	}
	if payload.SectionRole != "" && !cms.ValidRole(payload.SectionRole) {
		return "Unknown section role"
	}
	return ""
}

func createAboutBlock(c echo.Context) error {
	var payload aboutBlockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content block", err.Error())
	}
	if msg := validateAboutPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}
	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	row := domain.AboutBlock{
		ID:          common.UUIDint64(),
		BlockKey:    payload.BlockKey,
		SectionRole: payload.SectionRole,
		Title:       payload.Title,
		Content:     payload.Content,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		Icon:        strings.TrimSpace(payload.Icon),
		Sort:        payload.Sort,
		IsActive:    active,
		Metadata:    payload.Metadata,
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fail(c, http.StatusConflict, "CONFLICT", "Block key already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create content block", err.Error())
	}
	return ok(c, row)
}

func updateAboutBlock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}
	var row domain.AboutBlock
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Content block not found", nil)
	}
	var payload aboutBlockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content block", err.Error())
	}
	if msg := validateAboutPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}
	row.BlockKey = payload.BlockKey
	row.SectionRole = payload.SectionRole
	row.Title = payload.Title
	row.Content = payload.Content
	row.ImageURL = strings.TrimSpace(payload.ImageURL)
	row.Icon = strings.TrimSpace(payload.Icon)
	row.Sort = payload.Sort
	if payload.IsActive != nil {
		row.IsActive = *payload.IsActive
	}
	row.Metadata = payload.Metadata
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fail(c, http.StatusConflict, "CONFLICT", "Block key already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update content block", err.Error())
	}
	return ok(c, row)
}

func toggleAboutBlock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}
	var row domain.AboutBlock
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Content block not found", nil)
	}
	row.IsActive = !row.IsActive
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update content block", err.Error())
	}
	return ok(c, row)
}

func deleteAboutBlock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.AboutBlock{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete content block", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
