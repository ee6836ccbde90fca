package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/utils"
)

// AuthHandler serves the account endpoints.
type AuthHandler struct {
	service   service.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler builds an auth handler instance.
func NewAuthHandler(service service.AuthService, validator *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the routes. protect guards the routes that need a bearer token.
func (h *AuthHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Post("/login", h.login)
	router.Post("/register", h.register)
	router.Get("/me", protect, h.me)
	router.Post("/logout", protect, h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	credentials := dto.LoginRequest{
		Email:    c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	if err := h.validator.Struct(credentials); err != nil {
		return sendValidationError(c, err)
	}

	token, err := h.service.Login(c.UserContext(), credentials)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	requestLogger(h.logger, c).Info().Str("email", credentials.Email).Msg("login succeeded")
	return utils.SendJSON(c, fiber.StatusOK, token)
}

// register answers with the created user, the way the backend does.
func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	token, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if token.User != nil {
		return utils.SendJSON(c, fiber.StatusCreated, token.User)
	}
	return utils.SendJSON(c, fiber.StatusCreated, token)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := h.service.GetUserProfile(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, user)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext()); err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
