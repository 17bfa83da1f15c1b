package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
}

// getDashboard returns per-table row counts for the admin landing
// cards.
func getDashboard(c echo.Context) error {
	db := GetDB(c)
	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"categories":    &domain.Category{},
		"services":      &domain.CmsService{},
		"products":      &domain.Product{},
		"about_content": &domain.AboutBlock{},
		"videos":        &domain.Video{},
		"photos":        &domain.Photo{},
		"contacts":      &domain.ContactMessage{},
	} {
		var total int64
		if err := db.Model(model).Count(&total).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count "+name, nil)
		}
		counts[name] = total
	}
	return ok(c, counts)
}
