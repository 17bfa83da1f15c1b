package siteapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/internal/media"
	"github.com/cran-montage/cranweb/internal/webserver"
)

func registerWorksRoutes() {
	webserver.PubGET("/works", getWorksGallery)
}

type worksPayload struct {
	Videos []media.GalleryVideo `json:"videos"`
	Photos []media.GalleryPhoto `json:"photos"`
}

// getWorksGallery returns both gallery collections ordered by sort
// key. Empty collections fall back to the known early-deployment file
// lists so the page is never blank.
func getWorksGallery(c echo.Context) error {
	urls := appctx.Storage()

	var videos []domain.Video
	err := GetDB(c).
		Where("is_active = ?", true).
		Order("sort asc, id asc").
		Find(&videos).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query videos", nil)
	}

	var photos []domain.Photo
	err = GetDB(c).
		Where("is_active = ?", true).
		Order("sort asc, id asc").
		Find(&photos).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query photos", nil)
	}

	payload := worksPayload{
		Videos: media.GalleryVideos(videos, urls),
		Photos: media.GalleryPhotos(photos, urls),
	}
	if len(payload.Videos) == 0 {
		payload.Videos = media.FallbackVideos(urls)
	}
	if len(payload.Photos) == 0 {
		payload.Photos = media.FallbackPhotos()
	}
	return ok(c, payload)
}
