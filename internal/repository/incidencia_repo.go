package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// IncidenciaFilter narrows device incident queries.
type IncidenciaFilter struct {
	Desde *time.Time
	Hasta *time.Time
}

// IncidenciaRepository provides access to device incidents.
type IncidenciaRepository interface {
	GetByID(ctx context.Context, id string) (models.IncidenciaDispositivo, error)
	List(ctx context.Context, filter IncidenciaFilter) ([]models.IncidenciaDispositivo, error)
	Create(ctx context.Context, incidencia *models.IncidenciaDispositivo) error
	Update(ctx context.Context, incidencia *models.IncidenciaDispositivo) error
	CountByResolucion(ctx context.Context, estado string) (int64, error)
}

type incidenciaRepository struct {
	db *gorm.DB
}

// NewIncidenciaRepository constructs an incident repository.
func NewIncidenciaRepository(db *gorm.DB) IncidenciaRepository {
	return &incidenciaRepository{db: db}
}

func (r *incidenciaRepository) GetByID(ctx context.Context, id string) (models.IncidenciaDispositivo, error) {
	var incidencia models.IncidenciaDispositivo
	err := r.db.WithContext(ctx).
		Preload("Dispositivo.Sala").
		Preload("Dispositivo.Sede").
		First(&incidencia, "id = ?", id).Error
	if err != nil {
		return models.IncidenciaDispositivo{}, err
	}

	return incidencia, nil
}

func (r *incidenciaRepository) List(ctx context.Context, filter IncidenciaFilter) ([]models.IncidenciaDispositivo, error) {
	query := r.db.WithContext(ctx).
		Preload("Dispositivo.Sala").
		Preload("Dispositivo.Sede").
		Order("created_at DESC")

	if filter.Desde != nil && filter.Hasta != nil {
		query = query.Where("created_at >= ? AND created_at <= ?", *filter.Desde, *filter.Hasta)
	}

	var incidencias []models.IncidenciaDispositivo
	if err := query.Find(&incidencias).Error; err != nil {
		return nil, err
	}

	return incidencias, nil
}

func (r *incidenciaRepository) Create(ctx context.Context, incidencia *models.IncidenciaDispositivo) error {
	return r.db.WithContext(ctx).Create(incidencia).Error
}

func (r *incidenciaRepository) Update(ctx context.Context, incidencia *models.IncidenciaDispositivo) error {
	return r.db.WithContext(ctx).Save(incidencia).Error
}

func (r *incidenciaRepository) CountByResolucion(ctx context.Context, estado string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.IncidenciaDispositivo{}).
		Where("estado_resolucion = ?", estado).
		Count(&total).Error
	return total, err
}
