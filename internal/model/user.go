package model

import (
	"time"

	"gorm.io/gorm"
)

// User panel operatoru
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
		"createdAt":   u.CreatedAt,
	}
}
