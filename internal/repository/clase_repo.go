package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// ClaseFilter narrows class session queries.
type ClaseFilter struct {
	ProfesorID string
	SalaID     string
	Estado     string
	Fecha      *time.Time
	Desde      *time.Time
	Hasta      *time.Time
}

// ClaseRepository provides access to class sessions and enrollments.
type ClaseRepository interface {
	GetByID(ctx context.Context, id string) (models.Clase, error)
	List(ctx context.Context, filter ClaseFilter) ([]models.Clase, error)
	ListRecent(ctx context.Context, limit int) ([]models.Clase, error)
	ListByAlumno(ctx context.Context, alumnoID string, desde, hasta *time.Time) ([]models.Clase, error)
	Create(ctx context.Context, clase *models.Clase) error
	CreateInscripcion(ctx context.Context, inscripcion *models.Inscripcion) error
	CountByDateRange(ctx context.Context, desde, hasta time.Time) (int64, error)
}

type claseRepository struct {
	db *gorm.DB
}

// NewClaseRepository constructs a class repository.
func NewClaseRepository(db *gorm.DB) ClaseRepository {
	return &claseRepository{db: db}
}

func (r *claseRepository) GetByID(ctx context.Context, id string) (models.Clase, error) {
	var clase models.Clase
	err := r.db.WithContext(ctx).
		Preload("Profesor").
		Preload("Sala.Sede").
		Preload("Inscripciones.Alumno").
		Preload("Marcajes", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_hora DESC")
		}).
		Preload("Marcajes.Alumno").
		First(&clase, "id = ?", id).Error
	if err != nil {
		return models.Clase{}, err
	}

	return clase, nil
}

func (r *claseRepository) List(ctx context.Context, filter ClaseFilter) ([]models.Clase, error) {
	query := r.db.WithContext(ctx).
		Preload("Profesor").
		Preload("Sala.Sede").
		Preload("Inscripciones.Alumno").
		Preload("Marcajes").
		Order("fecha ASC").
		Order("hora_inicio ASC")

	if filter.ProfesorID != "" {
		query = query.Where("profesor_id = ?", filter.ProfesorID)
	}
	if filter.SalaID != "" {
		query = query.Where("sala_id = ?", filter.SalaID)
	}
	if filter.Estado != "" {
		query = query.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != nil {
		day := filter.Fecha.Truncate(24 * time.Hour)
		query = query.Where("fecha >= ? AND fecha < ?", day, day.Add(24*time.Hour))
	} else if filter.Desde != nil && filter.Hasta != nil {
		query = query.Where("fecha >= ? AND fecha <= ?", *filter.Desde, *filter.Hasta)
	}

	var clases []models.Clase
	if err := query.Find(&clases).Error; err != nil {
		return nil, err
	}

	return clases, nil
}

func (r *claseRepository) ListRecent(ctx context.Context, limit int) ([]models.Clase, error) {
	if limit <= 0 {
		limit = 5
	}

	var clases []models.Clase
	err := r.db.WithContext(ctx).
		Preload("Profesor").
		Preload("Sala").
		Order("fecha DESC").
		Limit(limit).
		Find(&clases).Error
	if err != nil {
		return nil, err
	}

	return clases, nil
}

func (r *claseRepository) ListByAlumno(ctx context.Context, alumnoID string, desde, hasta *time.Time) ([]models.Clase, error) {
	query := r.db.WithContext(ctx).
		Preload("Profesor").
		Preload("Sala.Sede").
		Joins("JOIN inscripciones ON inscripciones.clase_id = clases.id").
		Where("inscripciones.alumno_id = ?", alumnoID).
		Order("fecha ASC")

	if desde != nil && hasta != nil {
		query = query.Where("fecha >= ? AND fecha <= ?", *desde, *hasta)
	}

	var clases []models.Clase
	if err := query.Find(&clases).Error; err != nil {
		return nil, err
	}

	return clases, nil
}

func (r *claseRepository) Create(ctx context.Context, clase *models.Clase) error {
	return r.db.WithContext(ctx).Create(clase).Error
}

func (r *claseRepository) CreateInscripcion(ctx context.Context, inscripcion *models.Inscripcion) error {
	return r.db.WithContext(ctx).Create(inscripcion).Error
}

func (r *claseRepository) CountByDateRange(ctx context.Context, desde, hasta time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Clase{}).
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Count(&total).Error
	return total, err
}
