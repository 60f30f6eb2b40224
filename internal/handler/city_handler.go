package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/service"
)

type CityHandler struct {
	cityService *service.CityService
}

func NewCityHandler(cityService *service.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

func (h *CityHandler) GetPopularCities(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid limit"))
		}
		limit = parsed
	}

	cities, err := h.cityService.PopularCities(limit)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(cities, "Cities retrieved successfully"))
}

func (h *CityHandler) GetCity(c *fiber.Ctx) error {
	cityID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid city ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	city, err := h.cityService.GetCity(cityID, userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(city, "City retrieved successfully"))
}

func (h *CityHandler) SearchCities(c *fiber.Ctx) error {
	prefix := c.Params("prefix")

	cities, err := h.cityService.SearchByPrefix(prefix)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(cities, "Cities retrieved successfully"))
}

func (h *CityHandler) GetCityFacts(c *fiber.Ctx) error {
	cityID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid city ID"))
	}

	facts, err := h.cityService.Facts(cityID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(facts, "City facts retrieved successfully"))
}

func (h *CityHandler) GetCityImages(c *fiber.Ctx) error {
	cityID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid city ID"))
	}

	images, err := h.cityService.Images(cityID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(images, "City images retrieved successfully"))
}

func (h *CityHandler) UploadCityImage(c *fiber.Ctx) error {
	cityID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid city ID"))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No image uploaded"))
	}

	image, err := h.cityService.UploadImage(cityID, file)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(image, "City image uploaded successfully"))
}

func (h *CityHandler) GetCityVisits(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	visits, err := h.cityService.Visits(userID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(visits, "City visits retrieved successfully"))
}

func (h *CityHandler) GetCityInformation(c *fiber.Ctx) error {
	cityID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid city ID"))
	}

	information, err := h.cityService.Information(cityID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(information, "City information retrieved successfully"))
}
