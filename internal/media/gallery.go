package media

import (
	"github.com/cran-montage/cranweb/internal/domain"
)

// PublicURLBuilder turns a bucket and stored filename into a public
// URL. Satisfied by the storage service.
type PublicURLBuilder interface {
	PublicURL(bucket, filename string) string
}

// Bucket names mirror the historical storage layout: videos in their
// own bucket, photos alongside product images.
const (
	VideoBucket = "video"
	PhotoBucket = "products_img"
)

// GalleryVideo is one works-page video entry with its derived
// playable URL.
type GalleryVideo struct {
	ID          int64  `json:"id,string"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoType   string `json:"video_type"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// GalleryPhoto is one works-page photo entry.
type GalleryPhoto struct {
	ID    int64  `json:"id,string"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PlayableURL derives how a video row is actually played: YouTube
// embeds from the stored id, direct URLs pass through, uploaded files
// resolve against the video bucket.
func PlayableURL(v *domain.Video, urls PublicURLBuilder) string {
	switch v.VideoType {
	case domain.VideoTypeYouTube:
		return YouTubeEmbedURL(v.YouTubeID)
	case domain.VideoTypeURL:
		return v.VideoURL
	default:
		return urls.PublicURL(VideoBucket, v.Filename)
	}
}

// GalleryVideos maps video rows into works-page entries, keeping the
// caller's ordering.
func GalleryVideos(rows []domain.Video, urls PublicURLBuilder) []GalleryVideo {
	out := make([]GalleryVideo, 0, len(rows))
	for i := range rows {
		v := &rows[i]
		entry := GalleryVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoType:   v.VideoType,
			URL:         PlayableURL(v, urls),
		}
		if v.VideoType == domain.VideoTypeYouTube && v.YouTubeID != "" {
			entry.Thumbnail = YouTubeThumbnailURL(v.YouTubeID)
		}
		out = append(out, entry)
	}
	return out
}

// GalleryPhotos maps photo rows into works-page entries.
func GalleryPhotos(rows []domain.Photo, urls PublicURLBuilder) []GalleryPhoto {
	out := make([]GalleryPhoto, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		out = append(out, GalleryPhoto{
			ID:    p.ID,
			Title: p.Title,
			URL:   urls.PublicURL(PhotoBucket, p.Filename),
		})
	}
	return out
}

// Known filenames from the first deployment; shown while the media
// tables are still empty so the works page never renders blank.
var fallbackVideoFiles = []struct {
	title    string
	filename string
}{
	{"Проект 1", "0u9dq5fzmlad_1748104138382.mp4"},
	{"Проект 2", "fa108d7pstu_1748104211093.mp4"},
	{"Проект 3", "fgvgtlomy0i_1748021981959.mp4"},
	{"Проект 4", "n9pmlarbaei_1748163383916.mp4"},
}

var fallbackPhotoFiles = []struct {
	title string
	url   string
}{
	{"Проект 1", "/img/services/IMG_9236.jpg"},
	{"Проект 2", "/img/services/IMG_9370.jpg"},
	{"Проект 3", "/img/services/photo_2022-11-07_15-16-02.jpg"},
}

// FallbackVideos returns the hardcoded early-deployment video list.
func FallbackVideos(urls PublicURLBuilder) []GalleryVideo {
	out := make([]GalleryVideo, 0, len(fallbackVideoFiles))
	for i, f := range fallbackVideoFiles {
		out = append(out, GalleryVideo{
			ID:        int64(-(i + 1)),
			Title:     f.title,
			VideoType: domain.VideoTypeFile,
			URL:       urls.PublicURL(VideoBucket, f.filename),
		})
	}
	return out
}

// FallbackPhotos returns the hardcoded early-deployment photo list.
func FallbackPhotos() []GalleryPhoto {
	out := make([]GalleryPhoto, 0, len(fallbackPhotoFiles))
	for i, f := range fallbackPhotoFiles {
		out = append(out, GalleryPhoto{ID: int64(-(i + 1)), Title: f.title, URL: f.url})
	}
	return out
}
