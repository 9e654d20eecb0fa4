package model

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

type BlogPost struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Title           string     `json:"title" gorm:"not null"`
	Slug            string     `json:"slug" gorm:"uniqueIndex;not null"`
	Content         string     `json:"content" gorm:"type:text"` // markdown
	Author          string     `json:"author"`                   // operator e-postası
	Status          PostStatus `json:"status" gorm:"not null;default:'draft';index"`
	FeatureImageURL string     `json:"featureImageUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (p *BlogPost) RecordID() string {
	return p.ID
}

// BeforeCreate id ve başlıktan slug üretir
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Slug == "" {
		s := slug.Make(p.Title)
		if s == "" {
			s = "post"
		}

		// Slug'ın benzersiz olduğundan emin ol
		var count int64
		if err := tx.Session(&gorm.Session{NewDB: true}).Model(&BlogPost{}).Where("slug = ?", s).Count(&count).Error; err != nil {
			return fmt.Errorf("check slug %q: %w", s, err)
		}
		if count > 0 {
			s = fmt.Sprintf("%s-%s", s, p.ID[:min(8, len(p.ID))])
		}
		p.Slug = s
	}
	return nil
}
