package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// SeedHandler exposes the tooling endpoint that provisions the demo dataset.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("", h.run)
}

func (h *SeedHandler) run(c *fiber.Ctx) error {
	summary, err := h.service.Run(c.Context(), c.Get("X-Seed-Token"))
	if err != nil {
		switch err {
		case service.ErrSeedDisabled:
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		case service.ErrSeedUnauthorized:
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		default:
			h.logger.Error().Err(err).Msg("seed operation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
		}
	}

	return utils.SendSuccess(c, "demo dataset seeded", summary)
}
