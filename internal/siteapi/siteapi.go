package siteapi

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/webserver"
)

// appctx is bound once at route registration; handlers reach storage
// and the telegram relay through it.
var appctx app.AppContext

// InitRouter registers every public content endpoint.
func InitRouter(ctx app.AppContext) {
	appctx = ctx
	registerHomeRoutes()
	registerAboutRoutes()
	registerCatalogRoutes()
	registerServiceRoutes()
	registerWorksRoutes()
	registerContactRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return webserver.Fail(c, status, code, msg, detail)
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}
