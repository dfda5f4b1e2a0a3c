package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the error body shape shared by every endpoint.
type ErrorResponse struct {
	CustomMakemeetErrorMessage string `json:"customMakemeetErrorMessage"`
	ValidationError            any    `json:"validationError,omitempty"`
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{CustomMakemeetErrorMessage: msg})
}

// validationErrorJSON reports a 400 with the offending fields in the
// validationError field.
func validationErrorJSON(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{
		CustomMakemeetErrorMessage: "Validation error in field `validationError`.",
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]fiber.Map, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fiber.Map{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
		resp.ValidationError = details
	} else {
		resp.ValidationError = err.Error()
	}

	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

func jsonParseErrorJSON(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest,
		"Request body was not valid JSON.")
}
