package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/utils"
)

// SubmissionHandler manages submission endpoints.
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("/my", h.mine)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Post("/:id/evaluate", h.evaluate)
}

func (h *SubmissionHandler) mine(c *fiber.Ctx) error {
	submissions, err := h.service.GetUserSubmissions(c.UserContext(), c.Query("challenge_id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, submissions)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	submission, err := h.service.GetSubmissionByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, submission)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	submission, err := h.service.CreateSubmission(c.UserContext(), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	requestLogger(h.logger, c).Info().Str("submission_id", submission.ID).Msg("submission created")
	return utils.SendJSON(c, fiber.StatusCreated, submission)
}

func (h *SubmissionHandler) update(c *fiber.Ctx) error {
	var payload dto.SubmissionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	submission, err := h.service.UpdateSubmission(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, submission)
}

func (h *SubmissionHandler) evaluate(c *fiber.Ctx) error {
	submission, err := h.service.EvaluateSubmission(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, submission)
}
