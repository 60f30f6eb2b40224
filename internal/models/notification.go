package models

import (
	"time"
)

// NotificationType tags the origin of a notification.
type NotificationType string

const (
	NotificationCommon NotificationType = "COMMON"
	NotificationTrip   NotificationType = "TRIP"
)

type Notification struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	InitiatorUserID uint             `json:"initiator_user_id" gorm:"not null;index"`
	InitiatorUser   User             `json:"-" gorm:"foreignKey:InitiatorUserID"`
	DestinedUserID  uint             `json:"destined_user_id" gorm:"not null;index"`
	DestinedUser    User             `json:"-" gorm:"foreignKey:DestinedUserID"`
	Text            string           `json:"text" gorm:"not null"`
	Type            NotificationType `json:"notification_type" gorm:"size:20;not null;default:COMMON"`
	IsRead          bool             `json:"is_read" gorm:"default:false"`
	CreatedAt       time.Time        `json:"created_at"`
}

type NotificationResponse struct {
	ID        uint             `json:"id"`
	Initiator UserResponse     `json:"initiator_user"`
	Text      string           `json:"text"`
	Type      NotificationType `json:"notification_type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
