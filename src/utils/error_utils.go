package utils

import (
	"flux-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

func HandleValidationError(c *fiber.Ctx, messages []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{Errors: messages})
}
