package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/utils"
)

// ChallengeHandler serves the challenge catalogue.
type ChallengeHandler struct {
	service service.ChallengeService
	logger  zerolog.Logger
}

// NewChallengeHandler builds a challenge handler instance.
func NewChallengeHandler(service service.ChallengeService, logger zerolog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		service: service,
		logger:  logger.With().Str("component", "challenge_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ChallengeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/recommended", h.recommended)
	router.Get("/:id", h.get)
}

func (h *ChallengeHandler) list(c *fiber.Ctx) error {
	activeOnly, err := parseQueryBool(c, "active_only", true)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid active_only")
	}

	query := dto.ChallengeQuery{
		ActiveOnly:  activeOnly,
		SponsorID:   optionalQuery(c, "sponsor_id"),
		SeasonID:    optionalQuery(c, "season_id"),
		SearchQuery: c.Query("search"),
	}

	challenges, err := h.service.GetChallenges(c.UserContext(), query)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, challenges)
}

func (h *ChallengeHandler) recommended(c *fiber.Ctx) error {
	challenges, err := h.service.GetRecommendedChallenges(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, challenges)
}

func (h *ChallengeHandler) get(c *fiber.Ctx) error {
	challenge, err := h.service.GetChallengeByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, challenge)
}
