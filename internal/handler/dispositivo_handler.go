package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// DispositivoHandler handles device monitoring endpoints.
type DispositivoHandler struct {
	service service.DispositivoService
	logger  zerolog.Logger
}

// NewDispositivoHandler constructs the handler.
func NewDispositivoHandler(service service.DispositivoService, logger zerolog.Logger) *DispositivoHandler {
	return &DispositivoHandler{
		service: service,
		logger:  logger.With().Str("component", "dispositivo_handler").Logger(),
	}
}

// Register wires device routes.
func (h *DispositivoHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/heartbeat", h.heartbeat)
	router.Get("/:id/historial", h.historial)
}

func (h *DispositivoHandler) list(c *fiber.Ctx) error {
	filter := repository.DispositivoFilter{
		SalaID: c.Query("salaId"),
		SedeID: c.Query("sedeId"),
	}

	dispositivos, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list dispositivos")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list dispositivos")
	}

	return utils.SendSuccess(c, "dispositivos retrieved", dispositivos)
}

func (h *DispositivoHandler) heartbeat(c *fiber.Ctx) error {
	var payload dto.HeartbeatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	dispositivo, err := h.service.Heartbeat(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case err == service.ErrEstadoConexionInvalido:
			allowed := strings.Join([]string{
				models.DispositivoConectado,
				models.DispositivoDesconectado,
				models.DispositivoAdvertencia,
			}, ", ")
			return utils.SendError(c, fiber.StatusBadRequest, "estadoConexion must be one of: "+allowed)
		case err == service.ErrDispositivoNotFound:
			return utils.SendError(c, fiber.StatusNotFound, "dispositivo not found")
		default:
			h.logger.Error().Err(err).Msg("heartbeat failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "heartbeat failed")
		}
	}

	return utils.SendSuccess(c, "heartbeat applied", dispositivo)
}

func (h *DispositivoHandler) historial(c *fiber.Ctx) error {
	historial, err := h.service.Historial(c.Context(), c.Params("id"))
	if err != nil {
		if err == service.ErrDispositivoNotFound {
			return utils.SendError(c, fiber.StatusNotFound, "dispositivo not found")
		}
		h.logger.Error().Err(err).Msg("failed to list historial")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list historial")
	}

	return utils.SendSuccess(c, "historial retrieved", historial)
}
