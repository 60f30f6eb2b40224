package models

import (
	"time"
)

// Checklist is a user's packing checklist. One per user, created lazily.
type Checklist struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	LastUpdated time.Time `json:"last_updated"`
}

type ChecklistItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ChecklistID uint   `json:"checklist_id" gorm:"not null;index"`
	Item        string `json:"item" gorm:"size:20;not null"`
	IsChecked   bool   `json:"is_checked" gorm:"default:false"`
}

type ChecklistItemRequest struct {
	Item string `json:"item" validate:"required,max=20"`
}

type ChecklistResponse struct {
	ID          uint            `json:"id"`
	LastUpdated time.Time       `json:"last_updated"`
	Items       []ChecklistItem `json:"items"`
}
