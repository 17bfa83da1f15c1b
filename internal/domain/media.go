package domain

import "time"

// Video source types. The type decides how a playable URL is derived:
// an object-storage path, a pass-through URL, or a YouTube embed.
const (
	VideoTypeFile    = "file"
	VideoTypeURL     = "url"
	VideoTypeYouTube = "youtube"
)

type Video struct {
	ID          int64     `json:"id,string" form:"id"`
	Title       string    `gorm:"index" json:"title" form:"title"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	VideoType   string    `gorm:"size:16;default:'file'" json:"video_type" form:"video_type"`
	Filename    string    `gorm:"size:512" json:"filename" form:"filename"`
	VideoURL    string    `gorm:"size:1024" json:"video_url" form:"video_url"`
	YouTubeID   string    `gorm:"size:16" json:"youtube_id" form:"youtube_id"`
	IsActive    bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	Sort        int       `gorm:"index" json:"sort_order" form:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

type Photo struct {
	ID        int64     `json:"id,string" form:"id"`
	Title     string    `gorm:"index" json:"title" form:"title"`
	Filename  string    `gorm:"size:512" json:"filename" form:"filename"`
	IsActive  bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	Sort      int       `gorm:"index" json:"sort_order" form:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}
