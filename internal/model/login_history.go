package model

import "time"

type LoginHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"size:36;not null;index"`
	Device    string    `json:"device" gorm:"size:255"` // User-Agent
	IP        string    `json:"ip" gorm:"size:50"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// RevokedToken çıkış yapılan oturumların token kimlikleri (jti)
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;index"`
	ExpiresAt time.Time `gorm:"index"`
}
