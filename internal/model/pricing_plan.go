package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PricingPlan birden fazla plan aynı anda MostPopular olabilir; uygulama bunu kısıtlamaz.
type PricingPlan struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	Title       string                      `json:"title" gorm:"not null;index"`
	Price       string                      `json:"price" gorm:"not null"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	MostPopular bool                        `json:"mostPopular" gorm:"default:false;index"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (PricingPlan) TableName() string {
	return "pricing_plans"
}

func (p *PricingPlan) RecordID() string {
	return p.ID
}

func (p *PricingPlan) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	return nil
}
