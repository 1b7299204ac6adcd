package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// DispositivoFilter narrows device queries.
type DispositivoFilter struct {
	SalaID string
	SedeID string
}

// DispositivoRepository provides access to devices and their state history.
type DispositivoRepository interface {
	GetByID(ctx context.Context, id string) (models.Dispositivo, error)
	List(ctx context.Context, filter DispositivoFilter) ([]models.Dispositivo, error)
	Create(ctx context.Context, dispositivo *models.Dispositivo) error
	Update(ctx context.Context, dispositivo *models.Dispositivo) error
	AppendHistorial(ctx context.Context, entry *models.HistorialDispositivo) error
	ListHistorial(ctx context.Context, dispositivoID string) ([]models.HistorialDispositivo, error)
	CountByEstado(ctx context.Context, estado string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type dispositivoRepository struct {
	db *gorm.DB
}

// NewDispositivoRepository constructs a device repository.
func NewDispositivoRepository(db *gorm.DB) DispositivoRepository {
	return &dispositivoRepository{db: db}
}

func (r *dispositivoRepository) GetByID(ctx context.Context, id string) (models.Dispositivo, error) {
	var dispositivo models.Dispositivo
	err := r.db.WithContext(ctx).
		Preload("Sala").
		Preload("Sede").
		First(&dispositivo, "id = ?", id).Error
	if err != nil {
		return models.Dispositivo{}, err
	}

	return dispositivo, nil
}

func (r *dispositivoRepository) List(ctx context.Context, filter DispositivoFilter) ([]models.Dispositivo, error) {
	query := r.db.WithContext(ctx).
		Preload("Sala").
		Preload("Sede").
		Order("serial_number ASC")

	if filter.SalaID != "" {
		query = query.Where("sala_id = ?", filter.SalaID)
	}
	if filter.SedeID != "" {
		query = query.Where("sede_id = ?", filter.SedeID)
	}

	var dispositivos []models.Dispositivo
	if err := query.Find(&dispositivos).Error; err != nil {
		return nil, err
	}

	return dispositivos, nil
}

func (r *dispositivoRepository) Create(ctx context.Context, dispositivo *models.Dispositivo) error {
	return r.db.WithContext(ctx).Create(dispositivo).Error
}

func (r *dispositivoRepository) Update(ctx context.Context, dispositivo *models.Dispositivo) error {
	return r.db.WithContext(ctx).Save(dispositivo).Error
}

func (r *dispositivoRepository) AppendHistorial(ctx context.Context, entry *models.HistorialDispositivo) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *dispositivoRepository) ListHistorial(ctx context.Context, dispositivoID string) ([]models.HistorialDispositivo, error) {
	var entries []models.HistorialDispositivo
	err := r.db.WithContext(ctx).
		Where("dispositivo_id = ?", dispositivoID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *dispositivoRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Dispositivo{}).
		Where("estado_conexion = ?", estado).
		Count(&total).Error
	return total, err
}

func (r *dispositivoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Dispositivo{}).Count(&total).Error
	return total, err
}
