package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// SedeRepository provides access to sites and their rooms.
type SedeRepository interface {
	GetSede(ctx context.Context, id string) (models.Sede, error)
	ListSedes(ctx context.Context) ([]models.Sede, error)
	CreateSede(ctx context.Context, sede *models.Sede) error
	GetSala(ctx context.Context, id string) (models.Sala, error)
	ListSalas(ctx context.Context, sedeID string) ([]models.Sala, error)
	CreateSala(ctx context.Context, sala *models.Sala) error
}

type sedeRepository struct {
	db *gorm.DB
}

// NewSedeRepository constructs a site repository.
func NewSedeRepository(db *gorm.DB) SedeRepository {
	return &sedeRepository{db: db}
}

func (r *sedeRepository) GetSede(ctx context.Context, id string) (models.Sede, error) {
	var sede models.Sede
	if err := r.db.WithContext(ctx).First(&sede, "id = ?", id).Error; err != nil {
		return models.Sede{}, err
	}

	return sede, nil
}

func (r *sedeRepository) ListSedes(ctx context.Context) ([]models.Sede, error) {
	var sedes []models.Sede
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&sedes).Error; err != nil {
		return nil, err
	}

	return sedes, nil
}

func (r *sedeRepository) CreateSede(ctx context.Context, sede *models.Sede) error {
	return r.db.WithContext(ctx).Create(sede).Error
}

func (r *sedeRepository) GetSala(ctx context.Context, id string) (models.Sala, error) {
	var sala models.Sala
	if err := r.db.WithContext(ctx).Preload("Sede").First(&sala, "id = ?", id).Error; err != nil {
		return models.Sala{}, err
	}

	return sala, nil
}

func (r *sedeRepository) ListSalas(ctx context.Context, sedeID string) ([]models.Sala, error) {
	query := r.db.WithContext(ctx).Preload("Sede").Order("nombre ASC")
	if sedeID != "" {
		query = query.Where("sede_id = ?", sedeID)
	}

	var salas []models.Sala
	if err := query.Find(&salas).Error; err != nil {
		return nil, err
	}

	return salas, nil
}

func (r *sedeRepository) CreateSala(ctx context.Context, sala *models.Sala) error {
	return r.db.WithContext(ctx).Create(sala).Error
}
