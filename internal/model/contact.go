package model

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage web sitesindeki iletişim formundan gelen mesaj.
// Oluşturulduktan sonra değiştirilmez, sadece silinebilir.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (ContactMessage) TableName() string {
	return "contacts"
}

func (m *ContactMessage) RecordID() string {
	return m.ID
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
