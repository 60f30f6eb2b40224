package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/service"
)

type GithubHandler struct {
	githubService *service.GithubService
}

func NewGithubHandler(githubService *service.GithubService) *GithubHandler {
	return &GithubHandler{githubService: githubService}
}

func (h *GithubHandler) GetContributors(c *fiber.Ctx) error {
	owner := c.Params("owner")
	repo := c.Params("repo")

	contributors, err := h.githubService.Contributors(owner, repo)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(models.SuccessResponse(contributors, "Contributors retrieved successfully"))
}
