package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	notifications, err := h.notificationService.ListForUser(userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(notifications, "Notifications retrieved successfully"))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid notification ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.notificationService.MarkRead(notificationID, userID); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Successfully marked notification as read."))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	count, err := h.notificationService.MarkAllRead(userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"count": count},
		"Successfully marked all notifications as read."))
}
