package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/service"
	"github.com/nomadcrew/nomad-backend/pkg/utils"
)

type TripHandler struct {
	tripService *service.TripService
	validator   *utils.Validator
}

func NewTripHandler(tripService *service.TripService, validator *utils.Validator) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		validator:   validator,
	}
}

func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var req models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	trip, err := h.tripService.CreateTrip(userID, req)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(trip, "Successfully added new trip."))
}

func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid trip ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	trip, err := h.tripService.GetTrip(tripID, userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(trip, "Trip retrieved successfully"))
}

func (h *TripHandler) GetUserTrips(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid limit"))
		}
		limit = parsed
	}

	trips, err := h.tripService.ListTrips(userID, limit)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(trips, "Trips retrieved successfully"))
}

func (h *TripHandler) AddMember(c *fiber.Ctx) error {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid trip ID"))
	}
	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.tripService.AddMember(tripID, userID, targetID); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Successfully added user to trip"))
}

func (h *TripHandler) RemoveMember(c *fiber.Ctx) error {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid trip ID"))
	}
	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.tripService.RemoveMember(tripID, userID, targetID); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Successfully removed user from trip"))
}

func (h *TripHandler) RenameTrip(c *fiber.Ctx) error {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid trip ID"))
	}
	name := c.Params("name")

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.tripService.RenameTrip(tripID, userID, name); err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Successfully updated trip name"))
}

func (h *TripHandler) CommonTrips(c *fiber.Ctx) error {
	otherID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	trips, err := h.tripService.CommonTrips(userID, otherID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(trips, "Common trips retrieved successfully"))
}

func (h *TripHandler) LeaveTrip(c *fiber.Ctx) error {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid trip ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	deleted, err := h.tripService.LeaveTrip(tripID, userID)
	if err != nil {
		return handleError(c, err)
	}

	message := "Successfully left trip"
	if deleted {
		message = "Successfully left trip, trip deleted"
	}
	return c.JSON(models.SuccessResponse(nil, message))
}
