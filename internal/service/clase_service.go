package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

// ErrClaseNotFound indicates the class session does not exist.
var ErrClaseNotFound = errors.New("clase not found")

// ClaseService exposes class session queries for calendars and rosters.
type ClaseService interface {
	Get(ctx context.Context, id string) (models.Clase, error)
	List(ctx context.Context, filter repository.ClaseFilter) ([]models.Clase, error)
	MisClases(ctx context.Context, actor Actor, desde, hasta *time.Time) ([]models.Clase, error)
	PorAlumno(ctx context.Context, alumnoID string, desde, hasta *time.Time) ([]models.Clase, error)
	Desactivadas(ctx context.Context, salaID string, fecha *time.Time) ([]models.Clase, error)
}

type claseService struct {
	clases repository.ClaseRepository
	logger zerolog.Logger
}

// NewClaseService builds the class query service.
func NewClaseService(clases repository.ClaseRepository, logger zerolog.Logger) ClaseService {
	return &claseService{
		clases: clases,
		logger: logger.With().Str("component", "clase_service").Logger(),
	}
}

func (s *claseService) Get(ctx context.Context, id string) (models.Clase, error) {
	clase, err := s.clases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Clase{}, ErrClaseNotFound
		}
		return models.Clase{}, err
	}

	return clase, nil
}

func (s *claseService) List(ctx context.Context, filter repository.ClaseFilter) ([]models.Clase, error) {
	return s.clases.List(ctx, filter)
}

// MisClases narrows the calendar to the authenticated professor's sessions.
func (s *claseService) MisClases(ctx context.Context, actor Actor, desde, hasta *time.Time) ([]models.Clase, error) {
	filter := repository.ClaseFilter{Desde: desde, Hasta: hasta}
	if actor.Authenticated() {
		filter.ProfesorID = actor.ID
	}

	return s.clases.List(ctx, filter)
}

func (s *claseService) PorAlumno(ctx context.Context, alumnoID string, desde, hasta *time.Time) ([]models.Clase, error) {
	if alumnoID == "" {
		return []models.Clase{}, nil
	}

	return s.clases.ListByAlumno(ctx, alumnoID, desde, hasta)
}

func (s *claseService) Desactivadas(ctx context.Context, salaID string, fecha *time.Time) ([]models.Clase, error) {
	filter := repository.ClaseFilter{
		Estado: models.ClaseCancelada,
		SalaID: salaID,
		Fecha:  fecha,
	}

	return s.clases.List(ctx, filter)
}
