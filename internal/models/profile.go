package models

import "time"

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageShona   Language = "sn"
	LanguageNdebele Language = "nd"
)

// UserProfile is the single record persisted by the profile store.
type UserProfile struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone,omitempty"`
	Location          string          `json:"location,omitempty"`
	FarmSize          *float64        `json:"farm_size,omitempty"`
	PreferredLanguage Language        `json:"preferred_language"`
	ExperienceLevel   ExperienceLevel `json:"experience_level,omitempty"`
	PrimaryCrops      []string        `json:"primary_crops"`
	CreatedAt         time.Time       `json:"created_at"`
	JoinedAt          time.Time       `json:"joined_at"`
}
