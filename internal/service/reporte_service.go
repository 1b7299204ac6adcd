package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

// ReporteService exposes error report use cases.
type ReporteService interface {
	List(ctx context.Context, filter repository.ReporteFilter) ([]models.ReporteError, error)
	Create(ctx context.Context, payload dto.ReporteCreateRequest, actor Actor) (models.ReporteError, error)
}

type reporteService struct {
	reportes  repository.ReporteRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReporteService builds the error report service.
func NewReporteService(reportes repository.ReporteRepository, validate *validator.Validate, logger zerolog.Logger) ReporteService {
	return &reporteService{
		reportes:  reportes,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "reporte_service").Logger(),
		now:       time.Now,
	}
}

func (s *reporteService) List(ctx context.Context, filter repository.ReporteFilter) ([]models.ReporteError, error) {
	return s.reportes.List(ctx, filter)
}

func (s *reporteService) Create(ctx context.Context, payload dto.ReporteCreateRequest, actor Actor) (models.ReporteError, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ReporteError{}, err
	}

	// Comments render in operator dashboards; strip any markup.
	comentario := strings.TrimSpace(s.sanitizer.Sanitize(payload.Comentario))

	reporte := models.ReporteError{
		ProfesorID: actor.ID,
		SalaID:     payload.SalaID,
		SedeID:     payload.SedeID,
		Fecha:      s.now(),
		Comentario: comentario,
		Estado:     "pendiente",
	}

	if err := s.reportes.Create(ctx, &reporte); err != nil {
		return models.ReporteError{}, err
	}

	s.logger.Info().Str("reporte_id", reporte.ID).Str("profesor_id", actor.ID).Msg("reporte created")

	return reporte, nil
}
