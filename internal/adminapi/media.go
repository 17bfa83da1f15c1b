package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/media"
	"github.com/cran-montage/cranweb/internal/storage"
	"github.com/cran-montage/cranweb/internal/webserver"
	"github.com/cran-montage/cranweb/pkg/common"
)

func registerMediaRoutes() {
	webserver.ApiGET("/videos", listAdminVideos)
	webserver.ApiPOST("/videos", createVideo)
	webserver.ApiPUT("/videos/:id", updateVideo)
	webserver.ApiPUT("/videos/:id/active", toggleVideo)
	webserver.ApiDELETE("/videos/:id", deleteVideo)

	webserver.ApiGET("/photos", listAdminPhotos)
	webserver.ApiPOST("/photos", createPhoto)
	webserver.ApiPUT("/photos/:id", updatePhoto)
	webserver.ApiPUT("/photos/:id/active", togglePhoto)
	webserver.ApiDELETE("/photos/:id", deletePhoto)
}

func listAdminVideos(c echo.Context) error {
	var rows []domain.Video
	if err := GetDB(c).Order("sort asc, id asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query videos", err.Error())
	}
	return ok(c, rows)
}

// createVideo accepts a multipart form. video_type selects the source:
// "file" stores the uploaded part, "youtube" resolves the video id from
// the submitted URL, "url" passes the address through as-is.
func createVideo(c echo.Context) error {
	videoType := strings.TrimSpace(c.FormValue("video_type"))
	if videoType == "" {
		videoType = domain.VideoTypeFile
	}

	row := domain.Video{
		ID:          common.UUIDint64(),
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
		VideoType:   videoType,
		IsActive:    true,
		Sort:        cast.ToInt(c.FormValue("sort_order")),
	}

	switch videoType {
	case domain.VideoTypeFile:
		filename, errResp := saveUploadedFile(c, storage.BucketVideo)
		if errResp != nil {
			return errResp(c)
		}
		row.Filename = filename
	case domain.VideoTypeYouTube:
		id, err := media.ExtractYouTubeID(c.FormValue("video_url"))
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unrecognized YouTube URL", nil)
		}
		row.YouTubeID = id
		row.VideoURL = strings.TrimSpace(c.FormValue("video_url"))
		row.Filename = "youtube_" + id
	case domain.VideoTypeURL:
		u := strings.TrimSpace(c.FormValue("video_url"))
		if u == "" {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Video URL is required", nil)
		}
		row.VideoURL = u
		row.Filename = fmt.Sprintf("url_%d", time.Now().UnixMilli())
	default:
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Video type must be file, url or youtube", nil)
	}

	if err := GetDB(c).Create(&row).Error; err != nil {
		if row.VideoType == domain.VideoTypeFile {
			_ = appctx.Storage().Remove(storage.BucketVideo, row.Filename)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create video", err.Error())
	}
	return ok(c, row)
}

// updateVideo edits metadata only; the source (file, URL, YouTube id)
// is fixed at creation. Replacing a source is delete plus re-create.
func updateVideo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid video ID", nil)
	}
	var row domain.Video
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Video not found", nil)
	}
	type videoPayload struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
		Sort        int    `json:"sort_order" form:"sort_order"`
		IsActive    *bool  `json:"is_active" form:"is_active"`
	}
	var payload videoPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse video", err.Error())
	}
	row.Title = strings.TrimSpace(payload.Title)
	row.Description = payload.Description
	row.Sort = payload.Sort
	if payload.IsActive != nil {
		row.IsActive = *payload.IsActive
	}
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update video", err.Error())
	}
	return ok(c, row)
}

func toggleVideo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid video ID", nil)
	}
	var row domain.Video
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Video not found", nil)
	}
	row.IsActive = !row.IsActive
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update video", err.Error())
	}
	return ok(c, row)
}

// deleteVideo removes the row first, then the backing object for
// file-type videos. A failed object removal is reported through
// storage_removed=false instead of failing the request; the row is
// already gone and the daily orphan sweep will flag the leftover.
func deleteVideo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid video ID", nil)
	}
	var row domain.Video
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Video not found", nil)
	}
	if err := GetDB(c).Delete(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete video", err.Error())
	}
	storageRemoved := true
	if row.VideoType == domain.VideoTypeFile && row.Filename != "" {
		if err := appctx.Storage().Remove(storage.BucketVideo, row.Filename); err != nil {
			storageRemoved = false
		}
	}
	return ok(c, map[string]interface{}{"id": id, "storage_removed": storageRemoved})
}

func listAdminPhotos(c echo.Context) error {
	var rows []domain.Photo
	if err := GetDB(c).Order("sort asc, id asc").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query photos", err.Error())
	}
	return ok(c, rows)
}

func createPhoto(c echo.Context) error {
	filename, errResp := saveUploadedFile(c, storage.BucketImage)
	if errResp != nil {
		return errResp(c)
	}
	row := domain.Photo{
		ID:       common.UUIDint64(),
		Title:    strings.TrimSpace(c.FormValue("title")),
		Filename: filename,
		IsActive: true,
		Sort:     cast.ToInt(c.FormValue("sort_order")),
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		_ = appctx.Storage().Remove(storage.BucketImage, filename)
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create photo", err.Error())
	}
	return ok(c, row)
}

func updatePhoto(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID", nil)
	}
	var row domain.Photo
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
	}
	type photoPayload struct {
		Title    string `json:"title" form:"title"`
		Sort     int    `json:"sort_order" form:"sort_order"`
		IsActive *bool  `json:"is_active" form:"is_active"`
	}
	var payload photoPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse photo", err.Error())
	}
	row.Title = strings.TrimSpace(payload.Title)
	row.Sort = payload.Sort
	if payload.IsActive != nil {
		row.IsActive = *payload.IsActive
	}
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update photo", err.Error())
	}
	return ok(c, row)
}

func togglePhoto(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID", nil)
	}
	var row domain.Photo
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
	}
	row.IsActive = !row.IsActive
	row.UpdatedAt = time.Now()
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update photo", err.Error())
	}
	return ok(c, row)
}

func deletePhoto(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID", nil)
	}
	var row domain.Photo
	if err := GetDB(c).Where("id = ?", id).First(&row).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
	}
	if err := GetDB(c).Delete(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete photo", err.Error())
	}
	storageRemoved := true
	if row.Filename != "" {
		if err := appctx.Storage().Remove(storage.BucketImage, row.Filename); err != nil {
			storageRemoved = false
		}
	}
	return ok(c, map[string]interface{}{"id": id, "storage_removed": storageRemoved})
}

// saveUploadedFile streams the "file" multipart part into a bucket and
// returns the stored filename, or a ready error responder.
func saveUploadedFile(c echo.Context, bucket string) (string, func(echo.Context) error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", func(c echo.Context) error {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "File part is required", nil)
		}
	}
	src, err := fh.Open()
	if err != nil {
		return "", func(c echo.Context) error {
			return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read upload", err.Error())
		}
	}
	defer src.Close()

	filename, err := appctx.Storage().Save(bucket, fh.Filename, fh.Size, src)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			limit, _ := appctx.Storage().MaxSize(bucket)
			return "", func(c echo.Context) error {
				return fail(c, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE",
					fmt.Sprintf("File exceeds the %d MiB limit", limit/(1<<20)), nil)
			}
		}
		return "", func(c echo.Context) error {
			return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store upload", err.Error())
		}
	}
	return filename, nil
}
