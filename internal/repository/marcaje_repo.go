package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// MarcajeFilter narrows attendance record queries.
type MarcajeFilter struct {
	ClaseID  string
	AlumnoID string
}

// MarcajeRepository provides access to attendance records.
type MarcajeRepository interface {
	GetByID(ctx context.Context, id string) (models.Marcaje, error)
	List(ctx context.Context, filter MarcajeFilter) ([]models.Marcaje, error)
	Create(ctx context.Context, marcaje *models.Marcaje) error
	Update(ctx context.Context, marcaje *models.Marcaje) error
}

type marcajeRepository struct {
	db *gorm.DB
}

// NewMarcajeRepository constructs an attendance repository.
func NewMarcajeRepository(db *gorm.DB) MarcajeRepository {
	return &marcajeRepository{db: db}
}

func (r *marcajeRepository) GetByID(ctx context.Context, id string) (models.Marcaje, error) {
	var marcaje models.Marcaje
	err := r.db.WithContext(ctx).
		Preload("Alumno").
		Preload("Clase").
		First(&marcaje, "id = ?", id).Error
	if err != nil {
		return models.Marcaje{}, err
	}

	return marcaje, nil
}

func (r *marcajeRepository) List(ctx context.Context, filter MarcajeFilter) ([]models.Marcaje, error) {
	query := r.db.WithContext(ctx).
		Preload("Alumno").
		Preload("Clase").
		Order("fecha_hora DESC")

	if filter.ClaseID != "" {
		query = query.Where("clase_id = ?", filter.ClaseID)
	}
	if filter.AlumnoID != "" {
		query = query.Where("alumno_id = ?", filter.AlumnoID)
	}

	var marcajes []models.Marcaje
	if err := query.Find(&marcajes).Error; err != nil {
		return nil, err
	}

	return marcajes, nil
}

func (r *marcajeRepository) Create(ctx context.Context, marcaje *models.Marcaje) error {
	return r.db.WithContext(ctx).Create(marcaje).Error
}

func (r *marcajeRepository) Update(ctx context.Context, marcaje *models.Marcaje) error {
	return r.db.WithContext(ctx).Save(marcaje).Error
}
