package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
)

// handleError translates a service error into the matching HTTP status and
// the standard response envelope.
func handleError(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(models.ErrorResponse(apperr.Message(err)))
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindAuthorization:
		return fiber.StatusUnauthorized
	case apperr.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
