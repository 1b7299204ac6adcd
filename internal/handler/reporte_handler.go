package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// ReporteHandler handles professor error report endpoints.
type ReporteHandler struct {
	service service.ReporteService
	logger  zerolog.Logger
}

// NewReporteHandler constructs the handler.
func NewReporteHandler(service service.ReporteService, logger zerolog.Logger) *ReporteHandler {
	return &ReporteHandler{
		service: service,
		logger:  logger.With().Str("component", "reporte_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReporteHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
}

func (h *ReporteHandler) list(c *fiber.Ctx) error {
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	filter := repository.ReporteFilter{
		SedeID: c.Query("sedeId"),
		Desde:  desde,
		Hasta:  hasta,
	}

	reportes, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list reportes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reportes")
	}

	return utils.SendSuccess(c, "reportes retrieved", reportes)
}

func (h *ReporteHandler) create(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if !actor.Authenticated() {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ReporteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	reporte, err := h.service.Create(c.Context(), payload, actor)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "comentario is required")
		}
		h.logger.Error().Err(err).Msg("failed to create reporte")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create reporte")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reporte created", reporte)
}
