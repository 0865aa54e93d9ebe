package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores ERROR+ log records for later inspection.
type SystemLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Level      string         `gorm:"size:10;not null;index" json:"level"`
	Message    string         `gorm:"type:text" json:"message"`
	RequestID  string         `gorm:"size:64;index" json:"request_id"`
	Procedure  string         `gorm:"size:100;index" json:"procedure"`
	ActorID    *uint          `json:"actor_id"`
	ProviderID *uint          `json:"provider_id"`
	Error      string         `gorm:"type:text" json:"error"`
	Extra      datatypes.JSON `json:"extra"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&Category{},
		&Neighborhood{},
		&Provider{},
		&Review{},
		&ContactLog{},
		&SystemLog{},
	}
}
