package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// UsuarioHandler handles account administration endpoints.
type UsuarioHandler struct {
	service service.UsuarioService
	logger  zerolog.Logger
}

// NewUsuarioHandler constructs the handler.
func NewUsuarioHandler(service service.UsuarioService, logger zerolog.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		service: service,
		logger:  logger.With().Str("component", "usuario_handler").Logger(),
	}
}

// Register wires account routes.
func (h *UsuarioHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
}

func (h *UsuarioHandler) list(c *fiber.Ctx) error {
	usuarios, err := h.service.List(c.Context(), c.Query("tipo"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list usuarios")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list usuarios")
	}

	return utils.SendSuccess(c, "usuarios retrieved", usuarios)
}

func (h *UsuarioHandler) create(c *fiber.Ctx) error {
	var payload dto.UsuarioCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	usuario, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.usuarioError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "usuario created", usuario)
}

func (h *UsuarioHandler) update(c *fiber.Ctx) error {
	var payload dto.UsuarioUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	usuario, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.usuarioError(c, err)
	}

	return utils.SendSuccess(c, "usuario updated", usuario)
}

func (h *UsuarioHandler) usuarioError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	case err == service.ErrTipoInvalido:
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user role")
	case err == service.ErrUsuarioNotFound:
		return utils.SendError(c, fiber.StatusNotFound, "usuario not found")
	default:
		h.logger.Error().Err(err).Msg("usuario operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "usuario operation failed")
	}
}
