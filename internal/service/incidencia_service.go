package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/config"
	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrIncidenciaNotFound indicates the incident does not exist.
	ErrIncidenciaNotFound = errors.New("incidencia not found")
	// ErrUbicacionNotFound indicates the target site or room does not exist.
	ErrUbicacionNotFound = errors.New("sede or sala not found")
	// ErrIncidenciaResuelta indicates a repeated homologation was rejected by policy.
	ErrIncidenciaResuelta = errors.New("incidencia already resolved")
)

// IncidenciaService exposes device incident use cases.
type IncidenciaService interface {
	List(ctx context.Context, filter repository.IncidenciaFilter) ([]models.IncidenciaDispositivo, error)
	Homologar(ctx context.Context, id string, payload dto.HomologarRequest) (models.IncidenciaDispositivo, error)
}

type incidenciaService struct {
	incidencias  repository.IncidenciaRepository
	sedes        repository.SedeRepository
	repeatPolicy string
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewIncidenciaService builds the incident service.
func NewIncidenciaService(incidencias repository.IncidenciaRepository, sedes repository.SedeRepository, repeatPolicy string, validate *validator.Validate, logger zerolog.Logger) IncidenciaService {
	return &incidenciaService{
		incidencias:  incidencias,
		sedes:        sedes,
		repeatPolicy: repeatPolicy,
		validator:    validate,
		logger:       logger.With().Str("component", "incidencia_service").Logger(),
	}
}

func (s *incidenciaService) List(ctx context.Context, filter repository.IncidenciaFilter) ([]models.IncidenciaDispositivo, error) {
	return s.incidencias.List(ctx, filter)
}

// Homologar reassigns the incident's effective location. The resolved site
// and room names are stored as snapshots so later renames leave the
// historical record untouched, and the resolution status becomes resuelto.
func (s *incidenciaService) Homologar(ctx context.Context, id string, payload dto.HomologarRequest) (models.IncidenciaDispositivo, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.IncidenciaDispositivo{}, err
	}

	incidencia, err := s.incidencias.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.IncidenciaDispositivo{}, ErrIncidenciaNotFound
		}
		return models.IncidenciaDispositivo{}, err
	}

	if incidencia.EstadoResolucion == models.ResolucionResuelto {
		switch s.repeatPolicy {
		case config.RehomologarReject:
			return models.IncidenciaDispositivo{}, ErrIncidenciaResuelta
		case config.RehomologarIdempotent:
			return incidencia, nil
		}
	}

	sede, err := s.sedes.GetSede(ctx, payload.SedeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.IncidenciaDispositivo{}, ErrUbicacionNotFound
		}
		return models.IncidenciaDispositivo{}, err
	}

	sala, err := s.sedes.GetSala(ctx, payload.SalaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.IncidenciaDispositivo{}, ErrUbicacionNotFound
		}
		return models.IncidenciaDispositivo{}, err
	}

	incidencia.SedeHomologada = &sede.Nombre
	incidencia.SalaHomologada = &sala.Nombre
	incidencia.EstadoResolucion = models.ResolucionResuelto

	if err := s.incidencias.Update(ctx, &incidencia); err != nil {
		return models.IncidenciaDispositivo{}, err
	}

	s.logger.Info().
		Str("incidencia_id", id).
		Str("sede", sede.Nombre).
		Str("sala", sala.Nombre).
		Msg("incidencia homologada")

	return incidencia, nil
}
