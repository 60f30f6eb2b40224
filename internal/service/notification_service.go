package service

import (
	"errors"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"gorm.io/gorm"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Create appends a directed notification. Persistence failures surface as
// internal errors so compound callers can abort.
func (s *NotificationService) Create(initiatorID, destinedID uint, text string, notificationType models.NotificationType) error {
	notification := &models.Notification{
		InitiatorUserID: initiatorID,
		DestinedUserID:  destinedID,
		Text:            text,
		Type:            notificationType,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return apperr.Internal("Error while creating notification", err)
	}
	return nil
}

// ListForUser returns the user's notifications newest first.
func (s *NotificationService) ListForUser(userID uint) ([]models.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListForUser(userID)
	if err != nil {
		return nil, apperr.Internal("failed to list notifications", err)
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, models.NotificationResponse{
			ID:        n.ID,
			Initiator: models.NewUserResponse(n.InitiatorUser),
			Text:      n.Text,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead flags the notification as read. Only the destined user may do
// this; marking an already-read notification is a no-op success.
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Notification does not exist")
		}
		return apperr.Internal("failed to load notification", err)
	}

	if notification.DestinedUserID != userID {
		return apperr.Authorization("Notification belongs to another user")
	}

	if notification.IsRead {
		return nil
	}

	if err := s.notificationRepo.MarkRead(notificationID); err != nil {
		return apperr.Internal("failed to mark notification as read", err)
	}
	return nil
}

// MarkAllRead flags every notification destined to the user and returns the
// affected count. Zero is a valid outcome.
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	count, err := s.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, apperr.Internal("failed to mark notifications as read", err)
	}
	return count, nil
}
