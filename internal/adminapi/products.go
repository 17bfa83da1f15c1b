package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

type productPayload struct {
	Title           string         `json:"title" form:"title"`
	Description     string         `json:"description" form:"description"`
	ImageURL        string         `json:"image_url" form:"image_url"`
	Price           string         `json:"price" form:"price"`
	CategoryID      *int64         `json:"category_id,string" form:"category_id"`
	Characteristics domain.JSONMap `json:"characteristics"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listAdminProducts)
	webserver.ApiGET("/products/:id", getAdminProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listAdminProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	categoryID := strings.TrimSpace(c.QueryParam("category"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "products.id",
		"title":      "products.title",
		"created_at": "products.created_at",
		"updated_at": "products.updated_at",
	}
	sortCol, has := allowed[sortField]
	if !has {
		sortCol = "products.id"
	}

	db := GetDB(c).Model(&domain.Product{}).
		Select("products.*, categories.name as category_name").
		Joins("left join categories on categories.id = products.category_id")
	if q != "" {
		if GetDB(c).Name() == "postgres" {
			db = db.Where("products.title ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(products.title) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if categoryID != "" {
		cid, err := strconv.ParseInt(categoryID, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category filter", nil)
		}
		db = db.Where("products.category_id = ?", cid)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	var rows []domain.ProductWithCategory
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getAdminProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var row domain.ProductWithCategory
	err = GetDB(c).Model(&domain.Product{}).
		Select("products.*, categories.name as category_name").
		Joins("left join categories on categories.id = products.category_id").
		Where("products.id = ?", id).First(&row).Error
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, row)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required", nil)
	}
	if err := checkCategoryRef(c, payload.CategoryID); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category does not exist", nil)
	}
	row := domain.Product{
		ID:              common.UUIDint64(),
		Title:           payload.Title,
		Description:     payload.Description,
		ImageURL:        strings.TrimSpace(payload.ImageURL),
		Price:           strings.TrimSpace(payload.Price),
		CategoryID:      payload.CategoryID,
		Characteristics: payload.Characteristics,
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, row)
}

func updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var row domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required", nil)
	}
	if err := checkCategoryRef(c, payload.CategoryID); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category does not exist", nil)
	}
	row.Title = payload.Title
	row.Description = payload.Description
	row.ImageURL = strings.TrimSpace(payload.ImageURL)
	row.Price = strings.TrimSpace(payload.Price)
	row.CategoryID = payload.CategoryID
	row.Characteristics = payload.Characteristics
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, row)
}

func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// checkCategoryRef verifies an optional category reference points at an
// existing row. A nil reference is always valid.
func checkCategoryRef(c echo.Context, id *int64) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := GetDB(c).Model(&domain.Category{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
