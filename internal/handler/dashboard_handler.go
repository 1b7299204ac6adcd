package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// DashboardHandler handles portal landing-page endpoints.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/clases-recientes", h.clasesRecientes)
}

func (h *DashboardHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build stats")
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}

func (h *DashboardHandler) clasesRecientes(c *fiber.Ctx) error {
	clases, err := h.service.ClasesRecientes(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list clases recientes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list clases recientes")
	}

	return utils.SendSuccess(c, "clases recientes retrieved", clases)
}
