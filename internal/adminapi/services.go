package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

type servicePayload struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
	CategoryID  *int64 `json:"category_id,string" form:"category_id"`
}

func registerServiceRoutes() {
	webserver.ApiGET("/services", listAdminServices)
	webserver.ApiGET("/services/:id", getAdminService)
	webserver.ApiPOST("/services", createService)
	webserver.ApiPUT("/services/:id", updateService)
	webserver.ApiDELETE("/services/:id", deleteService)
}

func listAdminServices(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	db := GetDB(c).Model(&domain.CmsService{})
	if q != "" {
		if GetDB(c).Name() == "postgres" {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}
	var rows []domain.CmsService
	if err := db.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getAdminService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var row domain.CmsService
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	return ok(c, row)
}

func createService(c echo.Context) error {
	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if err := checkCategoryRef(c, payload.CategoryID); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category does not exist", nil)
	}
	row := domain.CmsService{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		CategoryID:  payload.CategoryID,
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create service", err.Error())
	}
	return ok(c, row)
}

func updateService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var row domain.CmsService
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if err := checkCategoryRef(c, payload.CategoryID); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category does not exist", nil)
	}
	row.Name = payload.Name
	row.Description = payload.Description
	row.ImageURL = strings.TrimSpace(payload.ImageURL)
	row.CategoryID = payload.CategoryID
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service", err.Error())
	}
	return ok(c, row)
}

func deleteService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.CmsService{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete service", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
