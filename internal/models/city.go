package models

import (
	"time"
)

type City struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"city_name" gorm:"uniqueIndex;not null"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CityFact struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	CityID uint   `json:"city_id" gorm:"not null;index"`
	Fact   string `json:"fact" gorm:"not null"`
}

type CityImage struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	CityID uint   `json:"city_id" gorm:"not null;index"`
	URL    string `json:"url" gorm:"not null"`
}

// CityVisitLog records one catalog lookup of a city by a user. Visit counts
// drive the popular-cities listing.
type CityVisitLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CityID    uint      `json:"city_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

type CityResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"city_name"`
	ImageURL string `json:"image_url,omitempty"`
}

type CityDetailResponse struct {
	City
	HasVisited bool `json:"has_visited"`
}

type PopularCityResponse struct {
	City
	VisitCount int64 `json:"visit_count"`
}

type CityVisitResponse struct {
	City       City  `json:"city"`
	VisitCount int64 `json:"visit_count"`
}
