package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// PerfilHandler handles permission profile endpoints.
type PerfilHandler struct {
	service service.PerfilService
	logger  zerolog.Logger
}

// NewPerfilHandler constructs the handler.
func NewPerfilHandler(service service.PerfilService, logger zerolog.Logger) *PerfilHandler {
	return &PerfilHandler{
		service: service,
		logger:  logger.With().Str("component", "perfil_handler").Logger(),
	}
}

// Register wires profile routes.
func (h *PerfilHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
}

func (h *PerfilHandler) list(c *fiber.Ctx) error {
	perfiles, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list perfiles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list perfiles")
	}

	return utils.SendSuccess(c, "perfiles retrieved", perfiles)
}

func (h *PerfilHandler) create(c *fiber.Ctx) error {
	var payload dto.PerfilCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	perfil, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.perfilError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "perfil created", perfil)
}

func (h *PerfilHandler) update(c *fiber.Ctx) error {
	var payload dto.PerfilUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	perfil, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.perfilError(c, err)
	}

	return utils.SendSuccess(c, "perfil updated", perfil)
}

func (h *PerfilHandler) perfilError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	case err == service.ErrPermisosInvalidos:
		return utils.SendError(c, fiber.StatusBadRequest, "permisos must be a JSON array of permission codes")
	case err == service.ErrPerfilNotFound:
		return utils.SendError(c, fiber.StatusNotFound, "perfil not found")
	default:
		h.logger.Error().Err(err).Msg("perfil operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "perfil operation failed")
	}
}
