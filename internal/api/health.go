package api

import (
	"makemeet/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	repo repository.Repository
}

func NewHealthHandler(repo repository.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

func (h *HealthHandler) Healthy(c *fiber.Ctx) error {
	if err := h.repo.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "unhealthy",
			"message": "Database connection failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "Service is healthy",
	})
}
