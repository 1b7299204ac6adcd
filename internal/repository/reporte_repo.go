package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// ReporteFilter narrows error report queries.
type ReporteFilter struct {
	SedeID string
	Desde  *time.Time
	Hasta  *time.Time
}

// ReporteRepository provides access to professor error reports.
type ReporteRepository interface {
	List(ctx context.Context, filter ReporteFilter) ([]models.ReporteError, error)
	Create(ctx context.Context, reporte *models.ReporteError) error
}

type reporteRepository struct {
	db *gorm.DB
}

// NewReporteRepository constructs an error report repository.
func NewReporteRepository(db *gorm.DB) ReporteRepository {
	return &reporteRepository{db: db}
}

func (r *reporteRepository) List(ctx context.Context, filter ReporteFilter) ([]models.ReporteError, error) {
	query := r.db.WithContext(ctx).
		Preload("Profesor").
		Order("created_at DESC")

	if filter.SedeID != "" {
		query = query.Where("sede_id = ?", filter.SedeID)
	}
	if filter.Desde != nil && filter.Hasta != nil {
		query = query.Where("fecha >= ? AND fecha <= ?", *filter.Desde, *filter.Hasta)
	}

	var reportes []models.ReporteError
	if err := query.Find(&reportes).Error; err != nil {
		return nil, err
	}

	return reportes, nil
}

func (r *reporteRepository) Create(ctx context.Context, reporte *models.ReporteError) error {
	return r.db.WithContext(ctx).Create(reporte).Error
}
