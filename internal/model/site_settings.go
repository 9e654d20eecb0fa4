package model

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsID tek global ayar kaydının anahtarı
const SettingsID = "global"

type ImpactNumbers struct {
	ProjectsCompleted int `json:"projectsCompleted"`
	HappyClients      int `json:"happyClients"`
	YearsOfExperience int `json:"yearsOfExperience"`
}

// Clamp negatif değerleri sıfıra çeker
func (n ImpactNumbers) Clamp() ImpactNumbers {
	return ImpactNumbers{
		ProjectsCompleted: max(n.ProjectsCompleted, 0),
		HappyClients:      max(n.HappyClients, 0),
		YearsOfExperience: max(n.YearsOfExperience, 0),
	}
}

type SiteSettings struct {
	ID            string                            `json:"-" gorm:"primaryKey;size:36"`
	ContactEmail  string                            `json:"contactEmail,omitempty"`
	PhoneNumber   string                            `json:"phoneNumber,omitempty"`
	Address       string                            `json:"address,omitempty"`
	TwitterURL    string                            `json:"twitterUrl,omitempty"`
	LinkedinURL   string                            `json:"linkedinUrl,omitempty"`
	FacebookURL   string                            `json:"facebookUrl,omitempty"`
	InstagramURL  string                            `json:"instagramUrl,omitempty"`
	GithubURL     string                            `json:"githubUrl,omitempty"`
	ImpactNumbers datatypes.JSONType[ImpactNumbers] `json:"impactNumbers"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
}

func (SiteSettings) TableName() string {
	return "settings"
}

func (s *SiteSettings) RecordID() string {
	return s.ID
}
