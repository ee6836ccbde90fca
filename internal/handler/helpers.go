package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/middleware"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/utils"
)

const localsToken = "token"

// FieldError is one entry of a 422 validation detail list.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the body of a 422 answer.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// RequireBearer rejects requests without a bearer token.
func RequireBearer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		c.Locals(localsToken, strings.TrimSpace(token))
		return c.Next()
	}
}

func parseQueryBool(c *fiber.Ctx, key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := c.Get(middleware.HeaderCorrelationID); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func sendValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, FieldError{
			Loc:  []string{"body", fieldErr.Field()},
			Msg:  fieldMessage(fieldErr),
			Type: fieldErr.Tag(),
		})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{Detail: details})
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email address"
	case "url":
		return fieldErr.Field() + " must be a valid URL"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters"
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters"
	default:
		return fieldErr.Field() + " is invalid"
	}
}

// handleError maps collaborator failures onto the backend's error shape.
func handleError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var apiErr *service.APIError
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return utils.SendError(c, status, apiErr.Detail)
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
