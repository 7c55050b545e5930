package model

import "time"

// Place sources.
const (
	SourceSeed     = "seed"
	SourceOverpass = "overpass"
	SourceGoogle   = "google"
)

// Place is a point of interest in the catalog. Name is unique per city.
type Place struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	City        string    `gorm:"uniqueIndex:idx_places_city_name;size:128;not null" json:"city"`
	Name        string    `gorm:"uniqueIndex:idx_places_city_name;size:256;not null" json:"name"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Source      string    `gorm:"size:32;not null" json:"source"`
	ExternalID  string    `gorm:"size:128" json:"external_id,omitempty"`
	Address     string    `gorm:"size:512" json:"address,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	PriceLevel  *int      `json:"price_level,omitempty"` // 0 (free) to 4 (very expensive)
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
