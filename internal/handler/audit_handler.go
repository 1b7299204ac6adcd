package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	service service.AuditoriaService
	logger  zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service service.AuditoriaService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if !actor.Authenticated() {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.AuditLogFilter{
		Page:     page,
		PageSize: pageSize,
		ActorID:  c.Query("actorId"),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entityId"),
	}

	logs, total, err := h.service.List(c.Context(), filter, actor)
	if err != nil {
		switch err {
		case service.ErrActorDesconocido:
			return utils.SendError(c, fiber.StatusUnauthorized, "unknown account")
		case service.ErrPermisoDenegado:
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		default:
			h.logger.Error().Err(err).Msg("failed to list audit logs")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit logs")
		}
	}

	return utils.SendSuccess(c, "audit logs retrieved", fiber.Map{
		"items": logs,
		"total": total,
	})
}
