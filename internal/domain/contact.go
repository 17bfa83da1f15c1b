package domain

import "time"

// ContactMessage is a contact-form submission. Rows are kept for the
// admin contacts screen; delivery to the Telegram chat is best effort
// and recorded in RelayStatus.
type ContactMessage struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `json:"name" form:"name"`
	Phone       string    `gorm:"size:64" json:"phone" form:"phone"`
	Message     string    `gorm:"type:text" json:"message" form:"message"`
	RelayStatus string    `gorm:"size:16;default:'pending'" json:"relay_status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ContactMessage) TableName() string {
	return "contacts"
}
