package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"flux-backend/src/models"
	"flux-backend/src/services/applications"
	"flux-backend/src/utils"
	"flux-backend/src/validation"

	"github.com/gofiber/fiber/v2"
)

type ApplicationController struct {
	service *applications.Service
}

func NewApplicationController(service *applications.Service) *ApplicationController {
	return &ApplicationController{service: service}
}

// CreateApplication godoc
// @Summary      Submit a membership application
// @Description  Validates the payload, splits comma separated skills and stores the application. Phone and email must be unused.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body body models.ApplicationInput true "Application"
// @Success      201  {object}  models.Application
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      429  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/applications [post]
func (ac *ApplicationController) CreateApplication(c *fiber.Ctx) error {
	var input models.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return utils.HandleValidationError(c, ac.typeMismatchMessages(typeErr, &input))
		}
		return utils.HandleValidationError(c, []string{bodyErrorMessage(err)})
	}

	app, err := ac.service.Create(c.UserContext(), input)
	if err != nil {
		var verrs *validation.Errors
		var dup *applications.DuplicateError
		switch {
		case errors.As(err, &verrs):
			return utils.HandleValidationError(c, verrs.Messages)
		case errors.As(err, &dup):
			return utils.HandleError(c, fiber.StatusConflict, dup.Error())
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, applications.ErrSaveFailed.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplications godoc
// @Summary      List applications
// @Description  Returns the 100 most recent applications, newest first. Requires an admin token when admin login is configured.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Application
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/applications [get]
func (ac *ApplicationController) GetApplications(c *fiber.Ctx) error {
	apps, err := ac.service.List(c.UserContext())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, applications.ErrFetchFailed.Error())
	}
	return c.JSON(apps)
}

// typeMismatchMessages puts the type error first and adds every violation
// found in the rest of the decoded body. Messages about the mistyped field
// itself are dropped since its value never arrived.
func (ac *ApplicationController) typeMismatchMessages(typeErr *json.UnmarshalTypeError, input *models.ApplicationInput) []string {
	messages := []string{bodyErrorMessage(typeErr)}

	var verrs *validation.Errors
	if err := ac.service.Validate(input); errors.As(err, &verrs) {
		prefix := fmt.Sprintf("%q", typeErr.Field)
		for _, msg := range verrs.Messages {
			if !strings.HasPrefix(msg, prefix) {
				messages = append(messages, msg)
			}
		}
	}
	return messages
}

func bodyErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "request body must be a JSON object"
		}
		return validation.TypeMismatch(typeErr.Field, typeErr.Type.String())
	}
	if errors.Is(err, fiber.ErrUnprocessableEntity) {
		return "request body must be JSON"
	}
	return "request body must be valid JSON"
}
