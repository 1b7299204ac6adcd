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

// MarcajeHandler handles attendance record endpoints.
type MarcajeHandler struct {
	service service.MarcajeService
	logger  zerolog.Logger
}

// NewMarcajeHandler constructs the handler.
func NewMarcajeHandler(service service.MarcajeService, logger zerolog.Logger) *MarcajeHandler {
	return &MarcajeHandler{
		service: service,
		logger:  logger.With().Str("component", "marcaje_handler").Logger(),
	}
}

// Register wires attendance routes. The update route requires an
// authenticated caller; listing stays open for the portal tables.
func (h *MarcajeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
}

func (h *MarcajeHandler) list(c *fiber.Ctx) error {
	filter := repository.MarcajeFilter{
		ClaseID:  c.Query("claseId"),
		AlumnoID: c.Query("alumnoId"),
	}

	marcajes, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list marcajes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list marcajes")
	}

	return utils.SendSuccess(c, "marcajes retrieved", marcajes)
}

func (h *MarcajeHandler) create(c *fiber.Ctx) error {
	var payload dto.MarcajeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	marcaje, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.marcajeError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "marcaje created", marcaje)
}

func (h *MarcajeHandler) update(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if !actor.Authenticated() {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.MarcajeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	marcaje, err := h.service.UpdateEstado(c.Context(), c.Params("id"), payload, actor)
	if err != nil {
		return h.marcajeError(c, err)
	}

	return utils.SendSuccess(c, "marcaje updated", marcaje)
}

func (h *MarcajeHandler) marcajeError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	case err == service.ErrEstadoInvalido:
		allowed := strings.Join(models.EstadosMarcaje, ", ")
		return utils.SendError(c, fiber.StatusBadRequest, "estado must be one of: "+allowed)
	case err == service.ErrActorDesconocido:
		return utils.SendError(c, fiber.StatusUnauthorized, "unknown account")
	case err == service.ErrPermisoDenegado:
		return utils.SendError(c, fiber.StatusForbidden, "permission denied")
	case err == service.ErrMarcajeNotFound:
		return utils.SendError(c, fiber.StatusNotFound, "marcaje not found")
	default:
		h.logger.Error().Err(err).Msg("marcaje operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "marcaje operation failed")
	}
}
