package models

import "time"

type ProviderStatus string

const (
	StatusPending  ProviderStatus = "pending"
	StatusApproved ProviderStatus = "approved"
	StatusRejected ProviderStatus = "rejected"
)

// Provider is a service listing owned by one actor and subject to admin
// approval. IsActive and IsFeatured are independent of Status.
type Provider struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OwnerID         uint           `gorm:"not null;uniqueIndex" json:"owner_id"`
	Name            string         `gorm:"size:150;not null" json:"name"`
	Phone           string         `gorm:"size:20;not null" json:"phone"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	NeighborhoodID  uint           `gorm:"not null;index" json:"neighborhood_id"`
	Description     *string        `gorm:"type:text" json:"description"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	Status          ProviderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	IsFeatured      bool           `gorm:"not null;default:false" json:"is_featured"`
	ApprovedAt      *time.Time     `json:"approved_at"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Provider) TableName() string {
	return "service_providers"
}
