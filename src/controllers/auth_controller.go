package controllers

import (
	"errors"

	"flux-backend/src/models"
	"flux-backend/src/services/auth"
	"flux-backend/src/utils"
	"flux-backend/src/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	service  *auth.Service
	validate *validation.Validator
}

func NewAuthController(service *auth.Service, v *validation.Validator) *AuthController {
	return &AuthController{service: service, validate: v}
}

// LoginAdmin godoc
// @Summary      Admin login
// @Description  Exchanges the admin credentials for a bearer token used by GET /api/applications.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.TokenResponse
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/auth/login [post]
func (ac *AuthController) LoginAdmin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleValidationError(c, []string{bodyErrorMessage(err)})
	}

	if err := ac.validate.Struct(&req); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			return utils.HandleValidationError(c, verrs.Messages)
		}
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	token, err := ac.service.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrLoginDisabled):
		return utils.HandleError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	case err != nil:
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.JSON(token)
}
