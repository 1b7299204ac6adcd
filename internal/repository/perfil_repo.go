package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// PerfilRepository provides access to permission profiles and the
// normalized permission catalog.
type PerfilRepository interface {
	GetByID(ctx context.Context, id string) (models.Perfil, error)
	List(ctx context.Context) ([]models.Perfil, error)
	Create(ctx context.Context, perfil *models.Perfil) error
	Update(ctx context.Context, perfil *models.Perfil) error
	ListPermisos(ctx context.Context) ([]models.Permiso, error)
	UpsertPermiso(ctx context.Context, permiso *models.Permiso) error
	ReplacePerfilPermisos(ctx context.Context, perfilID string, permisoIDs []string) error
}

type perfilRepository struct {
	db *gorm.DB
}

// NewPerfilRepository constructs a profile repository.
func NewPerfilRepository(db *gorm.DB) PerfilRepository {
	return &perfilRepository{db: db}
}

func (r *perfilRepository) GetByID(ctx context.Context, id string) (models.Perfil, error) {
	var perfil models.Perfil
	if err := r.db.WithContext(ctx).First(&perfil, "id = ?", id).Error; err != nil {
		return models.Perfil{}, err
	}

	return perfil, nil
}

func (r *perfilRepository) List(ctx context.Context) ([]models.Perfil, error) {
	var perfiles []models.Perfil
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&perfiles).Error; err != nil {
		return nil, err
	}

	return perfiles, nil
}

func (r *perfilRepository) Create(ctx context.Context, perfil *models.Perfil) error {
	return r.db.WithContext(ctx).Create(perfil).Error
}

func (r *perfilRepository) Update(ctx context.Context, perfil *models.Perfil) error {
	return r.db.WithContext(ctx).Save(perfil).Error
}

func (r *perfilRepository) ListPermisos(ctx context.Context) ([]models.Permiso, error) {
	var permisos []models.Permiso
	if err := r.db.WithContext(ctx).Order("codigo ASC").Find(&permisos).Error; err != nil {
		return nil, err
	}

	return permisos, nil
}

func (r *perfilRepository) UpsertPermiso(ctx context.Context, permiso *models.Permiso) error {
	var existing models.Permiso
	err := r.db.WithContext(ctx).First(&existing, "codigo = ?", permiso.Codigo).Error
	if err == nil {
		permiso.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(permiso).Error
}

// ReplacePerfilPermisos rewrites the join rows for a profile so the
// normalized representation tracks the serialized column.
func (r *perfilRepository) ReplacePerfilPermisos(ctx context.Context, perfilID string, permisoIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perfil_id = ?", perfilID).Delete(&models.PerfilPermiso{}).Error; err != nil {
			return err
		}

		for _, permisoID := range permisoIDs {
			row := models.PerfilPermiso{PerfilID: perfilID, PermisoID: permisoID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
