package models

import "time"

type ProfileType string

const (
	ProfileCustomer ProfileType = "customer"
	ProfileProvider ProfileType = "provider"
	ProfileAdmin    ProfileType = "admin"
)

// Valid reports whether t is one of the known profile types.
func (t ProfileType) Valid() bool {
	switch t {
	case ProfileCustomer, ProfileProvider, ProfileAdmin:
		return true
	}
	return false
}

// UserProfile holds the capability-bearing profile type of an actor.
// Created lazily the first time the profile is read.
type UserProfile struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;uniqueIndex" json:"user_id"`
	ProfileType ProfileType `gorm:"size:20;not null;default:'customer'" json:"profile_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
