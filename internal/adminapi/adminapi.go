package adminapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/webserver"
)

var appctx app.AppContext

// InitRouter registers every admin endpoint behind the auth gate.
func InitRouter(ctx app.AppContext) {
	appctx = ctx
	registerDashboardRoutes()
	registerCategoryRoutes()
	registerProductRoutes()
	registerServiceRoutes()
	registerAboutRoutes()
	registerMediaRoutes()
	registerContactRoutes()
	registerSettingRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return webserver.Fail(c, status, code, msg, detail)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, rows, total, page, pageSize)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	return webserver.ParsePagination(c)
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

// isUniqueViolation detects a unique-index conflict from either
// backend so handlers can answer CONFLICT instead of a generic
// database error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
