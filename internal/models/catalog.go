package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category is a kind of service (electrician, plumber, ...). Synonyms is a
// JSON list of alternative names used by the search front end.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	Icon        *string        `gorm:"size:50" json:"icon"`
	Synonyms    datatypes.JSON `json:"synonyms"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Category) TableName() string {
	return "service_categories"
}

type Neighborhood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Neighborhood) TableName() string {
	return "neighborhoods"
}
