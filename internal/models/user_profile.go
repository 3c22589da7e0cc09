package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTrainer UserRole = "trainer"
)

// UserProfile is the service-side record for an identity issued by the
// external identity provider. The role is fixed at signup completion;
// no code path updates an existing profile.
type UserProfile struct {
	ID     uint     `json:"id" gorm:"primaryKey"`
	UserID string   `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	Name   string   `json:"name" gorm:"not null;size:100"`
	Role   UserRole `json:"role" gorm:"not null;size:20;index"`
	Phone  *string  `json:"phone" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) IsTrainer() bool {
	return p.Role == RoleTrainer
}

func (p *UserProfile) IsStudent() bool {
	return p.Role == RoleStudent
}
