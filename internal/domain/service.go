package domain

import "time"

// CmsService is a public-site service offering (installation, repair,
// maintenance and so on), optionally tied to a category.
type CmsService struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	ImageURL    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	CategoryID  *int64    `gorm:"index" json:"category_id,string" form:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CmsService) TableName() string {
	return "services"
}
