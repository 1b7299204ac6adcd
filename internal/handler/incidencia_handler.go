package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// IncidenciaHandler handles device incident endpoints.
type IncidenciaHandler struct {
	service service.IncidenciaService
	logger  zerolog.Logger
}

// NewIncidenciaHandler constructs the handler.
func NewIncidenciaHandler(service service.IncidenciaService, logger zerolog.Logger) *IncidenciaHandler {
	return &IncidenciaHandler{
		service: service,
		logger:  logger.With().Str("component", "incidencia_handler").Logger(),
	}
}

// Register wires incident routes.
func (h *IncidenciaHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/historial", h.historial)
	router.Post("/:id/homologar", h.homologar)
}

func (h *IncidenciaHandler) list(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	incidencias, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list incidencias")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list incidencias")
	}

	return utils.SendSuccess(c, "incidencias retrieved", incidencias)
}

// historial serves the same rows as list; the portal uses a date range here.
func (h *IncidenciaHandler) historial(c *fiber.Ctx) error {
	return h.list(c)
}

func (h *IncidenciaHandler) homologar(c *fiber.Ctx) error {
	var payload dto.HomologarRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	incidencia, err := h.service.Homologar(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "sedeId and salaId are required")
		case err == service.ErrIncidenciaNotFound:
			return utils.SendError(c, fiber.StatusNotFound, "incidencia not found")
		case err == service.ErrUbicacionNotFound:
			return utils.SendError(c, fiber.StatusNotFound, "sede or sala not found")
		case err == service.ErrIncidenciaResuelta:
			return utils.SendError(c, fiber.StatusConflict, "incidencia already resolved")
		default:
			h.logger.Error().Err(err).Msg("homologation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "homologation failed")
		}
	}

	return utils.SendSuccess(c, "incidencia homologada", incidencia)
}

func (h *IncidenciaHandler) filterFromQuery(c *fiber.Ctx) (repository.IncidenciaFilter, error) {
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return repository.IncidenciaFilter{}, err
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return repository.IncidenciaFilter{}, err
	}

	return repository.IncidenciaFilter{Desde: desde, Hasta: hasta}, nil
}
