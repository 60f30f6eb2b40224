package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/service"
	"github.com/nomadcrew/nomad-backend/pkg/utils"
)

type ChecklistHandler struct {
	checklistService *service.ChecklistService
	validator        *utils.Validator
}

func NewChecklistHandler(checklistService *service.ChecklistService, validator *utils.Validator) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
		validator:        validator,
	}
}

func (h *ChecklistHandler) GetChecklist(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	checklist, err := h.checklistService.Get(userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(checklist, "Checklist retrieved successfully"))
}

func (h *ChecklistHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.ChecklistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	item, err := h.checklistService.AddItem(userID, req)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(item, "Checklist item added successfully"))
}

func (h *ChecklistHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid item ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.checklistService.DeleteItem(userID, itemID); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Checklist item deleted successfully"))
}

func (h *ChecklistHandler) ToggleItem(c *fiber.Ctx) error {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid item ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.checklistService.ToggleItem(userID, itemID); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Checklist item updated successfully"))
}
