package domain

import "time"

// AboutBlock is one admin-editable section of the about page. The
// SectionRole column is the authoritative classification; rows migrated
// from older data may leave it blank, in which case the block key is
// matched against keyword lists (see internal/cms).
type AboutBlock struct {
	ID          int64     `json:"id,string" form:"id"`
	BlockKey    string    `gorm:"uniqueIndex;size:200" json:"block_key" form:"block_key"`
	SectionRole string    `gorm:"size:32;index" json:"section_role" form:"section_role"`
	Title       string    `json:"title" form:"title"`
	Content     string    `gorm:"type:text" json:"content" form:"content"`
	ImageURL    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	Icon        string    `gorm:"size:64" json:"icon" form:"icon"`
	Sort        int       `gorm:"index" json:"sort" form:"sort"`
	IsActive    bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	Metadata    JSONMap   `json:"metadata" form:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AboutBlock) TableName() string {
	return "about_content"
}
