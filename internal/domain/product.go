package domain

import "time"

// Category groups products and services for catalog filtering.
type Category struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Product represents one catalog item. Price is stored as the operator
// typed it (numeric or pre-formatted string with currency/units).
type Product struct {
	ID              int64     `json:"id,string" form:"id"`
	Title           string    `gorm:"index" json:"title" form:"title"`
	Description     string    `gorm:"type:text" json:"description" form:"description"`
	ImageURL        string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	Price           string    `gorm:"size:64" json:"price" form:"price"`
	CategoryID      *int64    `gorm:"index" json:"category_id,string" form:"category_id"`
	Characteristics JSONMap   `json:"characteristics" form:"characteristics"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductWithCategory is the read shape for catalog listings: a product
// joined with its denormalized category name. Not migrated as a table.
type ProductWithCategory struct {
	Product
	CategoryName string `json:"category_name"`
}
