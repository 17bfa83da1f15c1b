package siteapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/cms"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerHomeRoutes() {
	webserver.PubGET("/home", getHomePage)
}

type homePayload struct {
	SiteTitle string                       `json:"site_title"`
	Phone     string                       `json:"phone"`
	Email     string                       `json:"email"`
	Stats     cms.CompanyStats             `json:"stats"`
	Products  []domain.ProductWithCategory `json:"products"`
	Services  []domain.CmsService          `json:"services"`
}

// getHomePage bundles the hero/landing data into one fetch: site
// contact settings, the experience counters, and the catalog/services
// preview strips.
func getHomePage(c echo.Context) error {
	payload := homePayload{
		SiteTitle: appctx.GetSettingsStringValue("site", "SiteTitle"),
		Phone:     appctx.GetSettingsStringValue("site", "SitePhone"),
		Email:     appctx.GetSettingsStringValue("site", "SiteEmail"),
	}

	// Classify the active blocks the same way the about page composes
	// them, so stats rows recognized only by keyword still surface here.
	var blocks []domain.AboutBlock
	if err := GetDB(c).
		Where("is_active = ?", true).
		Order("sort asc, id asc").
		Find(&blocks).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query about blocks", nil)
	}
	payload.Stats = cms.DecodeCompanyStats(nil)
	for i := range blocks {
		if cms.Classify(&blocks[i]) == cms.RoleStats {
			payload.Stats = cms.DecodeCompanyStats(blocks[i].Metadata)
			break
		}
	}

	if err := productWithCategoryQuery(c).Order("products.created_at desc").Limit(6).Find(&payload.Products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	if err := GetDB(c).Order("name asc").Limit(6).Find(&payload.Services).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", nil)
	}
	return ok(c, payload)
}
