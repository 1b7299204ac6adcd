package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// ClaseHandler handles class session endpoints.
type ClaseHandler struct {
	service service.ClaseService
	logger  zerolog.Logger
}

// NewClaseHandler constructs the handler.
func NewClaseHandler(service service.ClaseService, logger zerolog.Logger) *ClaseHandler {
	return &ClaseHandler{
		service: service,
		logger:  logger.With().Str("component", "clase_handler").Logger(),
	}
}

// Register wires class routes. The static paths must register before the
// :id parameter route.
func (h *ClaseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/mis-clases", h.misClases)
	router.Get("/alumno", h.porAlumno)
	router.Get("/desactivadas", h.desactivadas)
	router.Get("/:id", h.get)
}

func (h *ClaseHandler) list(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	clases, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list clases")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list clases")
	}

	return utils.SendSuccess(c, "clases retrieved", clases)
}

func (h *ClaseHandler) misClases(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if !actor.Authenticated() {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	desde, hasta, err := h.rangeFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	clases, err := h.service.MisClases(c.Context(), actor, desde, hasta)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list mis clases")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list clases")
	}

	return utils.SendSuccess(c, "clases retrieved", clases)
}

func (h *ClaseHandler) porAlumno(c *fiber.Ctx) error {
	desde, hasta, err := h.rangeFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	clases, err := h.service.PorAlumno(c.Context(), c.Query("alumnoId"), desde, hasta)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list clases por alumno")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list clases")
	}

	return utils.SendSuccess(c, "clases retrieved", clases)
}

func (h *ClaseHandler) desactivadas(c *fiber.Ctx) error {
	fecha, err := parseDateQuery(c, "fecha")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "dates must use YYYY-MM-DD")
	}

	clases, err := h.service.Desactivadas(c.Context(), c.Query("salaId"), fecha)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list clases desactivadas")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list clases")
	}

	return utils.SendSuccess(c, "clases retrieved", clases)
}

func (h *ClaseHandler) get(c *fiber.Ctx) error {
	clase, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == service.ErrClaseNotFound {
			return utils.SendError(c, fiber.StatusNotFound, "clase not found")
		}
		h.logger.Error().Err(err).Msg("failed to get clase")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get clase")
	}

	return utils.SendSuccess(c, "clase retrieved", clase)
}

func (h *ClaseHandler) filterFromQuery(c *fiber.Ctx) (repository.ClaseFilter, error) {
	fecha, err := parseDateQuery(c, "fecha")
	if err != nil {
		return repository.ClaseFilter{}, err
	}
	desde, hasta, err := h.rangeFromQuery(c)
	if err != nil {
		return repository.ClaseFilter{}, err
	}

	return repository.ClaseFilter{
		ProfesorID: c.Query("profesorId"),
		SalaID:     c.Query("salaId"),
		Estado:     c.Query("estado"),
		Fecha:      fecha,
		Desde:      desde,
		Hasta:      hasta,
	}, nil
}

func (h *ClaseHandler) rangeFromQuery(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return nil, nil, err
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return nil, nil, err
	}
	return desde, hasta, nil
}
