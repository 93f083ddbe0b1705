package database

import "time"

// MetadataItem is a cached TMDB response.
type MetadataItem struct {
	Kind    string `gorm:"primaryKey"`
	Id      string `gorm:"primaryKey"`
	Json    string `gorm:"type:text"`
	Expires time.Time
}

// StreamItem is a cached stream resolution for a provider url.
type StreamItem struct {
	Provider string `gorm:"primaryKey"`
	Id       string `gorm:"primaryKey"`
	Json     string `gorm:"type:text"`
	Expires  time.Time
}
