package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerContactRoutes() {
	webserver.ApiGET("/contacts", listContacts)
	webserver.ApiGET("/contacts/export", exportContacts)
	webserver.ApiDELETE("/contacts/:id", deleteContact)
}

func listContacts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := GetDB(c).Model(&domain.ContactMessage{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query contacts", err.Error())
	}
	var rows []domain.ContactMessage
	if err := db.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query contacts", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

// exportContacts streams every submission as an xlsx workbook, newest
// first, for handoff to the sales spreadsheet.
func exportContacts(c echo.Context) error {
	var rows []domain.ContactMessage
	if err := GetDB(c).Order("created_at desc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query contacts", err.Error())
	}

	book := excelize.NewFile()
	sheet := "Sheet1"
	headers := []string{"ID", "Name", "Phone", "Message", "Relay", "Created"}
	for i, h := range headers {
		book.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, row := range rows {
		line := strconv.Itoa(i + 2)
		book.SetCellValue(sheet, "A"+line, strconv.FormatInt(row.ID, 10))
		book.SetCellValue(sheet, "B"+line, row.Name)
		book.SetCellValue(sheet, "C"+line, row.Phone)
		book.SetCellValue(sheet, "D"+line, row.Message)
		book.SetCellValue(sheet, "E"+line, row.RelayStatus)
		book.SetCellValue(sheet, "F"+line, row.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	filename := fmt.Sprintf("contacts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := book.Write(c.Response()); err != nil {
		return err
	}
	return nil
}

func deleteContact(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.ContactMessage{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete contact", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
