package webserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const dbContextKey = "cranweb.db"

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(dbContextKey).(*gorm.DB)
}

// RestResult is the uniform JSON envelope for every API response.
type RestResult struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Msg     string      `json:"msg,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResult wraps list responses with pagination metadata.
type PagedResult struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// OK renders a success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, RestResult{Success: true, Data: data})
}

// Fail renders an error envelope with a machine-readable code.
func Fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, RestResult{Success: false, Code: code, Msg: msg, Detail: detail})
}

// Paged renders a page of rows with the total row count.
func Paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, PagedResult{
		Success:  true,
		Data:     rows,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ParsePagination reads page/perPage query parameters with sane
// bounds; perPage falls back to the legacy pageSize parameter.
func ParsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	raw := c.QueryParam("perPage")
	if raw == "" {
		raw = c.QueryParam("pageSize")
	}
	if ps, err := strconv.Atoi(raw); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
