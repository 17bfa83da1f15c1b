package siteapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/cms"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerAboutRoutes() {
	webserver.PubGET("/about", getAboutPage)
}

// getAboutPage composes the about-page layout slots from the active
// content blocks. An empty table is not an error: the composed page
// falls back to the built-in copy.
func getAboutPage(c echo.Context) error {
	var blocks []domain.AboutBlock
	err := GetDB(c).
		Where("is_active = ?", true).
		Order("sort asc, id asc").
		Find(&blocks).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query about content", nil)
	}
	return ok(c, cms.ComposeAboutPage(blocks))
}
