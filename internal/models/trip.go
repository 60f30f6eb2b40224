package models

import (
	"time"
)

type Trip struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:30;not null"`
	CityID    uint      `json:"city_id" gorm:"not null;index"`
	City      City      `json:"-" gorm:"foreignKey:CityID"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	IsPublic  bool      `json:"is_public" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripMember is one row of the trip/user membership relation. The composite
// unique index backs the IsMember existence query.
type TripMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TripID    uint      `json:"trip_id" gorm:"not null;uniqueIndex:idx_trip_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_trip_user;index"`
	CreatedAt time.Time `json:"created_at"`
}

type TripRequest struct {
	TripName  string `json:"trip_name" validate:"required,max=30"`
	CityID    uint   `json:"city_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
}

// TripResponse is the full trip view. Users holds the other members, the
// requesting user is left out.
type TripResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	City      CityResponse   `json:"city"`
	StartDate time.Time      `json:"start_date"`
	IsPublic  bool           `json:"is_public"`
	Users     []UserResponse `json:"users"`
}

// TripSummary is the condensed projection used by trip listings.
type TripSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CityID    uint      `json:"city_id"`
	CityName  string    `json:"city_name"`
	StartDate time.Time `json:"start_date"`
}
