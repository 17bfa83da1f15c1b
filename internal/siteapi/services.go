package siteapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerServiceRoutes() {
	webserver.PubGET("/services", listServices)
}

// listServices mirrors the catalog filter contract for the services
// page: optional exact category match, empty result is a valid state.
func listServices(c echo.Context) error {
	query := GetDB(c).Model(&domain.CmsService{})

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category id", nil)
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var rows []domain.CmsService
	if err := query.Order("name asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", nil)
	}
	return webserver.Paged(c, rows, int64(len(rows)), 1, len(rows))
}
