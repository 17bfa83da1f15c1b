package siteapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.PubGET("/categories", listCategories)
	webserver.PubGET("/catalog", listCatalog)
	webserver.PubGET("/catalog/:id", getCatalogItem)
}

func listCategories(c echo.Context) error {
	var rows []domain.Category
	if err := GetDB(c).Order("name asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", nil)
	}
	return ok(c, rows)
}

// productWithCategoryQuery joins products with their category name,
// the read shape the old products_with_category view provided.
func productWithCategoryQuery(c echo.Context) *gorm.DB {
	return GetDB(c).Model(&domain.Product{}).
		Select("products.*, categories.name as category_name").
		Joins("left join categories on categories.id = products.category_id")
}

// listCatalog returns all products, optionally narrowed to one
// category. The filter state lives in the URL so listings stay
// shareable; a category with no matching rows yields an empty list
// with a zero total, never an error.
func listCatalog(c echo.Context) error {
	query := productWithCategoryQuery(c)

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category id", nil)
		}
		query = query.Where("products.category_id = ?", categoryID)
	}

	var rows []domain.ProductWithCategory
	if err := query.Order("products.title asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return webserver.Paged(c, rows, int64(len(rows)), 1, len(rows))
}

func getCatalogItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var row domain.ProductWithCategory
	err = productWithCategoryQuery(c).
		Where("products.id = ?", id).
		First(&row).Error
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, row)
}
