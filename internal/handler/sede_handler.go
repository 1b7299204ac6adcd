package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// SedeHandler handles site and room listings.
type SedeHandler struct {
	sedes  repository.SedeRepository
	logger zerolog.Logger
}

// NewSedeHandler constructs the handler.
func NewSedeHandler(sedes repository.SedeRepository, logger zerolog.Logger) *SedeHandler {
	return &SedeHandler{
		sedes:  sedes,
		logger: logger.With().Str("component", "sede_handler").Logger(),
	}
}

// RegisterSedes wires the site listing.
func (h *SedeHandler) RegisterSedes(router fiber.Router) {
	router.Get("", h.listSedes)
}

// RegisterSalas wires the room listing.
func (h *SedeHandler) RegisterSalas(router fiber.Router) {
	router.Get("", h.listSalas)
}

func (h *SedeHandler) listSedes(c *fiber.Ctx) error {
	sedes, err := h.sedes.ListSedes(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list sedes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list sedes")
	}

	return utils.SendSuccess(c, "sedes retrieved", sedes)
}

func (h *SedeHandler) listSalas(c *fiber.Ctx) error {
	salas, err := h.sedes.ListSalas(c.Context(), c.Query("sedeId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list salas")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list salas")
	}

	return utils.SendSuccess(c, "salas retrieved", salas)
}
