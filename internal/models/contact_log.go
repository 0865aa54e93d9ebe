package models

import "time"

const DefaultContactMethod = "whatsapp"

// ContactLog records a contact attempt against a provider. UserID is nil for
// anonymous visitors. Rows are never updated or deleted.
type ContactLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProviderID    uint      `gorm:"not null;index" json:"provider_id"`
	UserID        *uint     `gorm:"index" json:"user_id"`
	ContactMethod string    `gorm:"size:50;not null;default:'whatsapp'" json:"contact_method"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ContactLog) TableName() string {
	return "contact_logs"
}
